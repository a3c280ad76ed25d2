package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/aspect"
)

func TestLabel(t *testing.T) {
	_, err := DefaultFont()
	require.NoError(t, err)

	t.Run("measures its text", func(t *testing.T) {
		l := NewLabel("hello")
		short := l.Measure()
		assert.Greater(t, short.Width, 0.0)
		assert.Greater(t, short.Height, 0.0)

		l.SetText("hello hello")
		long := l.Measure()
		assert.Greater(t, long.Width, short.Width)
		assert.Equal(t, short.Height, long.Height)
	})

	t.Run("grows with the font size", func(t *testing.T) {
		stage := NewStage(400, 100, WithTheme(loadTheme(t, "styles:\n  big:\n    fontSize: 28\n")))
		defer stage.Close()

		small, big := NewLabel("text"), NewLabel("text", WithStyle("big"))
		stage.Frame(func() { stage.Root().Add(small, big) })

		assert.Greater(t, big.Measure().Width, small.Measure().Width)
		assert.Greater(t, big.Measure().Height, small.Measure().Height)
	})

	t.Run("keeps one line unless wrapping", func(t *testing.T) {
		l := NewLabel("one two three four five six")
		l.SetSize(60, -1)

		assert.Equal(t, []string{"one two three four five six"}, l.Lines())
		oneLine := l.Measure().Height

		l.SetWrap(true)
		lines := l.Lines()
		assert.Greater(t, len(lines), 1)
		assert.Greater(t, l.Measure().Height, oneLine)
		assert.Equal(t, 60.0, l.Size().Width)
	})

	t.Run("only reshapes on text changes", func(t *testing.T) {
		l := NewLabel("hello")
		l.Measure()
		require.True(t, l.Component().IsValid(aspect.FlagTextElements))

		l.SetPosition(10, 10)
		assert.True(t, l.Component().IsValid(aspect.FlagTextElements))

		l.SetText("bye")
		assert.False(t, l.Component().IsValid(aspect.FlagTextElements))
		assert.False(t, l.Component().IsValid(aspect.FlagSizeConstraints))
	})

	t.Run("relayouts its parent on text changes", func(t *testing.T) {
		stage := NewStage(400, 100)
		defer stage.Close()

		l, after := NewLabel("hello"), sized("after", 10, 10)
		stage.Frame(func() { stage.Root().Add(l, after) })
		_, y := after.Position()
		require.Equal(t, l.Measure().Height, y)

		stage.Frame(func() {
			l.SetWrap(true)
			l.SetSize(20, -1)
			l.SetText("a much longer text wrapping on several lines")
		})

		_, y = after.Position()
		assert.Equal(t, l.Measure().Height, y)
		assert.Greater(t, len(l.Lines()), 1)
		assert.Equal(t, 2, stage.Renders())
	})
}

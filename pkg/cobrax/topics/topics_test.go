package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"help/overview.md":      {Data: []byte("# Overview\n\nHow packaging works")},
		"help/option-clean.txt": {Data: []byte("Empties the cache first")},
		"help/request.txxt":     {Data: []byte("Request files")},
		"help/ignore.json":      {Data: []byte("{}")},
	}
}

func TestTopicManager_Load(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.Load())

		assert.Equal(t, []string{"option-clean", "overview"}, tm.ListTopics())

		topic, ok := tm.GetTopic("overview")
		require.True(t, ok)
		assert.Equal(t, "help/overview.md", topic.FilePath)
		assert.Contains(t, topic.Content, "How packaging works")
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Load())

		assert.Equal(t, []string{"request"}, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Load())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic_FlagStyle(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.Load())

	for _, name := range []string{"clean", "--clean", "-clean", "option-clean"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-clean", topic.Name)
	}

	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title\n", r.Render("# Title", ".md"))
	assert.Equal(t, "body\n", r.Render("body\n\n  ", ".txt"))
}

func TestGlamourRenderer_NonMarkdownPassthrough(t *testing.T) {
	r := &GlamourRenderer{Style: "notty"}
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	rendered := r.Render("# Heading\n\nbody", ".md")
	assert.Contains(t, rendered, "Heading")
	assert.Contains(t, rendered, "body")
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "subpack", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "build", Short: "Build the package", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestInitialize_HelpCommand(t *testing.T) {
	root := newRoot()
	tm, err := Initialize(root, topicFS())
	require.NoError(t, err)
	require.NotNil(t, tm)

	run := func(args ...string) string {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(append([]string{"help"}, args...))
		require.NoError(t, root.Execute())
		return out.String()
	}

	list := run("topics")
	assert.Contains(t, list, "General topics:")
	assert.Contains(t, list, "  overview")
	assert.Contains(t, list, "  --clean")
	assert.Contains(t, list, "subpack help <topic>")

	assert.Equal(t, "Empties the cache first\n", run("clean"))

	cmdHelp := run("build")
	assert.True(t, strings.Contains(cmdHelp, "Build the package"), cmdHelp)
}

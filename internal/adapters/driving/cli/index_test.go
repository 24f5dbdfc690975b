package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/inkwell-labs/scandex-cli/internal/adapters/driven/config/file"
)

// withTestSettings installs settings for one test and resets the flag
// vars afterwards.
func withTestSettings(t *testing.T, s config.Settings) {
	t.Helper()
	settings = s
	settingsLoaded = true
	t.Cleanup(func() {
		settings = config.Settings{}
		settingsLoaded = false
		indexLang = ""
		indexDPI = 0
		indexPipeline = false
	})
}

// newPipelineCmd mirrors how index and watch bind the --pipeline flag.
func newPipelineCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolVar(&indexPipeline, "pipeline", false, "")
	return cmd
}

func TestIndexOptions_ConfigDefaults(t *testing.T) {
	withTestSettings(t, config.Settings{Language: "jpn+eng", DPI: 600})

	opts := indexOptions(newPipelineCmd())
	assert.Equal(t, "jpn+eng", opts.Lang)
	assert.Equal(t, 600, opts.DPI)
	assert.False(t, opts.Pipeline)
}

func TestIndexOptions_FlagsOverrideConfig(t *testing.T) {
	withTestSettings(t, config.Settings{Language: "jpn+eng", DPI: 600})
	indexLang = "eng"
	indexDPI = 150

	opts := indexOptions(newPipelineCmd())
	assert.Equal(t, "eng", opts.Lang)
	assert.Equal(t, 150, opts.DPI)
}

func TestIndexOptions_ConfigEnablesPipeline(t *testing.T) {
	withTestSettings(t, config.Settings{Pipeline: true})

	opts := indexOptions(newPipelineCmd())
	assert.True(t, opts.Pipeline)
}

func TestIndexOptions_ExplicitPipelineFalseBeatsConfig(t *testing.T) {
	withTestSettings(t, config.Settings{Pipeline: true})

	// --pipeline=false on the invoking command must win over the config
	// default, including on commands other than index.
	cmd := newPipelineCmd()
	require.NoError(t, cmd.Flags().Set("pipeline", "false"))

	opts := indexOptions(cmd)
	assert.False(t, opts.Pipeline)
}

func TestIndexOptions_ExplicitPipelineTrue(t *testing.T) {
	withTestSettings(t, config.Settings{})

	cmd := newPipelineCmd()
	require.NoError(t, cmd.Flags().Set("pipeline", "true"))

	opts := indexOptions(cmd)
	assert.True(t, opts.Pipeline)
}

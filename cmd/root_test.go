package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexlay/pkg/layout"
)

func TestExitCode_LayoutFailure(t *testing.T) {
	err := &layout.Error{Kind: layout.ErrMissingContainingBlock, BoxID: "root", Detail: "no width"}
	assert.Equal(t, exitLayoutFailure, exitCode(err))
	assert.Equal(t, exitLayoutFailure, exitCode(fmt.Errorf("wrapped: %w", err)))
}

func TestExitCode_DecodeFailure(t *testing.T) {
	err := fmt.Errorf("%w: unexpected token", errDecode)
	assert.Equal(t, exitDecodeFailure, exitCode(err))
}

func TestExitCode_GenericFailure(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestResolveViewportWidth(t *testing.T) {
	// An explicit --viewport-width wins over config, including an explicit 0.
	assert.Equal(t, 320.0, resolveViewportWidth(true, 320, 800))
	assert.Equal(t, 0.0, resolveViewportWidth(true, 0, 800))
	assert.Equal(t, 800.0, resolveViewportWidth(false, 0, 800))
}

func TestViewportWidthFlag_ExplicitZeroIsHonored(t *testing.T) {
	flags := layoutCmd.Flags()
	require.NoError(t, flags.Set("viewport-width", "0"))
	defer func() {
		layoutViewportWidth = 0
		flags.Lookup("viewport-width").Changed = false
	}()

	assert.True(t, flags.Changed("viewport-width"))
	assert.Equal(t, 0.0, resolveViewportWidth(flags.Changed("viewport-width"),
		layoutViewportWidth, 800))
}

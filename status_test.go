package spiflash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want Status
	}{
		{nil, StatusSuccess},
		{ErrTimeout, StatusTimeout},
		{fmt.Errorf("wrapped: %w", ErrTimeout), StatusTimeout},
		{ErrInvalidAddress, StatusError},
		{ErrIO, StatusError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.err), "StatusOf(%v)", c.err)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "timeout", StatusTimeout.String())
	assert.Equal(t, "error", StatusError.String())
}

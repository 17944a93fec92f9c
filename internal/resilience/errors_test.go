package resilience

import (
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"explicit wrapper", NewTransientError(eris.New("anything")), true},
		{"wrapped explicit wrapper", eris.Wrap(NewTransientError(eris.New("x")), "outer"), true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"deadline exceeded text", eris.New("context deadline exceeded"), true},
		{"chrome network error", eris.New("page load error net::ERR_NAME_NOT_RESOLVED"), true},
		{"dns failure", eris.New("lookup example.com: no such host"), true},
		{"io timeout", eris.New("read tcp: i/o timeout"), true},
		{"permanent error", eris.New("invalid selector"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

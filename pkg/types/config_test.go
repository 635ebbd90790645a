package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"valid", Config{Backend: BackendSQLite, DBPath: "satchel.db"}, nil},
		{"empty backend", Config{DBPath: "satchel.db"}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "etched-stone", DBPath: "satchel.db"}, ErrBackendUnknown},
		{"empty db path", Config{Backend: BackendSQLite}, ErrDBPathEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, ProjectDir: "/tmp/project"},
		},
		{
			name:    "empty backend",
			config:  Config{ProjectDir: "/tmp/project"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres", ProjectDir: "/tmp/project"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "empty project dir",
			config:  Config{Backend: BackendSQLite},
			wantErr: ErrProjectDirEmpty,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

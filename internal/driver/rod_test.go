package driver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

func TestMediaGrantTargetsContext(t *testing.T) {
	g := mediaGrant("ctx-1")
	if g.BrowserContextID != "ctx-1" {
		t.Errorf("BrowserContextID = %q, want ctx-1", g.BrowserContextID)
	}

	want := map[proto.BrowserPermissionType]bool{
		proto.BrowserPermissionTypeAudioCapture:  false,
		proto.BrowserPermissionTypeVideoCapture:  false,
		proto.BrowserPermissionTypeNotifications: false,
	}
	for _, p := range g.Permissions {
		want[p] = true
	}
	for p, seen := range want {
		if !seen {
			t.Errorf("permission %s not granted", p)
		}
	}
}

func TestIdleResult(t *testing.T) {
	done, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		parent  context.Context
		bounded context.Context
		want    string
	}{
		{"went idle", context.Background(), context.Background(), ""},
		{"bounded wait expired", context.Background(), done, "network not idle after 2s"},
		{"caller cancelled", done, done, context.Canceled.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := idleResult(tt.parent, tt.bounded, 2*time.Second)
			if tt.want == "" {
				if err != nil {
					t.Errorf("idleResult() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("idleResult() = %v, want %q", err, tt.want)
			}
			if tt.parent.Err() != nil && !errors.Is(err, context.Canceled) {
				t.Errorf("idleResult() should surface the caller's error, got %v", err)
			}
		})
	}
}

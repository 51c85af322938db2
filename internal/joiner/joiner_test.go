package joiner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetscribe/internal/driver/drivertest"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

const meetURL = "https://meet.google.com/abc-defg-hij"

func testConfig() Config {
	return Config{
		DisplayName:      "Alexa",
		ControlWait:      30 * time.Millisecond,
		ControlPoll:      5 * time.Millisecond,
		AdmissionTimeout: 60 * time.Millisecond,
		AdmissionPoll:    5 * time.Millisecond,
		CaptionAttempts:  3,
		CaptionPause:     time.Millisecond,
		OverlayAttempts:  2,
		OverlayPause:     time.Millisecond,
		ScreenshotDir:    "shots",
	}
}

func newTestJoiner(cfg Config) *implJoiner {
	return New(cfg, logger.NewNop()).(*implJoiner)
}

// captionsOnKey makes the 'c' shortcut switch captions on.
func captionsOnKey(d *drivertest.Driver) {
	var once sync.Once
	d.OnKey = func(key rune) {
		if key == 'c' {
			once.Do(func() {
				d.Add(&drivertest.Element{Selector: "aria-label*='Turn off captions'"})
			})
		}
	}
}

func TestJoinDirect(t *testing.T) {
	d := drivertest.NewDriver()
	camera := d.Add(&drivertest.Element{Selector: "[aria-label*='Turn off camera' i]"})
	mic := d.Add(&drivertest.Element{Selector: "[aria-label*='Turn off microphone' i]"})
	name := d.Add(&drivertest.Element{Selector: "input[aria-label*='name' i]"})
	join := d.Add(&drivertest.Element{Selector: "aria-label*='Join now'", Label: "Join now"})
	captionsOnKey(d)

	err := newTestJoiner(testConfig()).Join(context.Background(), d, "m-1", meetURL)
	require.NoError(t, err)

	assert.Equal(t, []string{meetURL}, d.Navigated())
	assert.Equal(t, 1, camera.Clicks())
	assert.Equal(t, 1, mic.Clicks())
	assert.Equal(t, "Alexa", name.Filled())
	assert.Equal(t, 1, join.Clicks())
	assert.Equal(t, []rune{'c'}, d.Keys())
	assert.Empty(t, d.Screenshots())
}

func TestJoinRequestAdmitted(t *testing.T) {
	cfg := testConfig()
	cfg.AdmissionTimeout = 2 * time.Second

	d := drivertest.NewDriver()
	d.Add(&drivertest.Element{
		Selector: "aria-label*='Ask to join'",
		OnClick: func() {
			d.SetBody("Asking to be let in...")
			time.AfterFunc(20*time.Millisecond, func() {
				d.SetBody("")
				d.Add(&drivertest.Element{Selector: "[data-meeting-title]"})
			})
		},
	})
	captionsOnKey(d)

	err := newTestJoiner(cfg).Join(context.Background(), d, "m-1", meetURL)
	require.NoError(t, err)
}

func TestJoinFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(d *drivertest.Driver)
		wantErr error
	}{
		{
			name: "guests not allowed",
			setup: func(d *drivertest.Driver) {
				d.SetBody("You can't join this video call")
			},
			wantErr: ErrBlocked,
		},
		{
			name:    "no join control",
			setup:   func(d *drivertest.Driver) {},
			wantErr: ErrNoJoinControl,
		},
		{
			name: "request denied",
			setup: func(d *drivertest.Driver) {
				d.Add(&drivertest.Element{
					Selector: "aria-label*='Ask to join'",
					OnClick:  func() { d.SetBody("Someone in the call denied your request to join") },
				})
			},
			wantErr: ErrBlocked,
		},
		{
			name: "admission timeout",
			setup: func(d *drivertest.Driver) {
				d.Add(&drivertest.Element{
					Selector: "aria-label*='Request to join'",
					OnClick:  func() { d.SetBody("Waiting for someone to let you in") },
				})
			},
			wantErr: ErrAdmissionTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := drivertest.NewDriver()
			tt.setup(d)

			err := newTestJoiner(testConfig()).Join(context.Background(), d, "m-1", meetURL)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			shots := d.Screenshots()
			require.Len(t, shots, 1)
			assert.True(t, strings.HasPrefix(shots[0], "shots/join-failed_m-1_"), shots[0])
			assert.Contains(t, err.Error(), shots[0])
		})
	}
}

func TestJoinNavigateError(t *testing.T) {
	d := drivertest.NewDriver()
	d.NavigateErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	err := newTestJoiner(testConfig()).Join(context.Background(), d, "m-1", meetURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigate")
}

func TestJoinInsideFrame(t *testing.T) {
	d := drivertest.NewDriver()
	frame := drivertest.NewDocument()
	join := frame.Add(&drivertest.Element{Selector: "aria-label*='Join meeting'"})
	d.AddFrame(frame)
	captionsOnKey(d)

	err := newTestJoiner(testConfig()).Join(context.Background(), d, "m-1", meetURL)
	require.NoError(t, err)
	assert.Equal(t, 1, join.Clicks())
}

func TestJoinSkipsHiddenControls(t *testing.T) {
	d := drivertest.NewDriver()
	hidden := d.Add(&drivertest.Element{Selector: "aria-label*='Join now'", Hidden: true})
	visible := d.Add(&drivertest.Element{Selector: "button[jsname='Qx7uuf']", Label: "Join"})
	captionsOnKey(d)

	err := newTestJoiner(testConfig()).Join(context.Background(), d, "m-1", meetURL)
	require.NoError(t, err)
	assert.Zero(t, hidden.Clicks())
	assert.Equal(t, 1, visible.Clicks())
}

func TestInferPath(t *testing.T) {
	tests := map[string]joinPath{
		"Join":            pathDirect,
		"Ask to join":     pathRequest,
		"Request to join": pathRequest,
		"":                pathDirect,
	}
	for text, want := range tests {
		if got := inferPath(text); got != want {
			t.Errorf("inferPath(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestEnableCaptionsFallsBackToControl(t *testing.T) {
	d := drivertest.NewDriver()
	control := d.Add(&drivertest.Element{
		Selector: "aria-label*='Turn on captions'",
		OnClick: func() {
			d.Add(&drivertest.Element{Selector: "aria-label*='Turn off captions'"})
		},
	})

	j := newTestJoiner(testConfig())
	require.True(t, j.enableCaptions(context.Background(), d, "m-1"))
	assert.Len(t, d.Keys(), 3)
	assert.Equal(t, 1, control.Clicks())
}

func TestEnableCaptionsAlreadyOn(t *testing.T) {
	d := drivertest.NewDriver()
	d.Add(&drivertest.Element{Selector: ".iTTPOb"})

	j := newTestJoiner(testConfig())
	require.True(t, j.enableCaptions(context.Background(), d, "m-1"))
	assert.Empty(t, d.Keys())
}

func TestEnableCaptionsFailureIsNotFatal(t *testing.T) {
	d := drivertest.NewDriver()
	d.Add(&drivertest.Element{Selector: "aria-label*='Join now'"})

	err := newTestJoiner(testConfig()).Join(context.Background(), d, "m-1", meetURL)
	require.NoError(t, err)

	assert.Len(t, d.Keys(), 3+lastResortPresses)
	shots := d.Screenshots()
	require.Len(t, shots, 1)
	assert.True(t, strings.HasPrefix(shots[0], "shots/captions-failed_m-1_"), shots[0])
}

func TestDismissOverlays(t *testing.T) {
	j := newTestJoiner(testConfig())

	t.Run("nothing to dismiss", func(t *testing.T) {
		d := drivertest.NewDriver()
		assert.False(t, j.DismissOverlays(context.Background(), d))
	})

	t.Run("dismissed once", func(t *testing.T) {
		d := drivertest.NewDriver()
		calls := 0
		d.SetEval(func(js string) (string, error) {
			calls++
			if calls == 1 {
				return "clicked", nil
			}
			return "none", nil
		})
		assert.True(t, j.DismissOverlays(context.Background(), d))
		assert.Equal(t, 2, calls)
	})

	t.Run("bounded attempts", func(t *testing.T) {
		d := drivertest.NewDriver()
		calls := 0
		d.SetEval(func(js string) (string, error) {
			calls++
			return "clicked", nil
		})
		assert.True(t, j.DismissOverlays(context.Background(), d))
		assert.Equal(t, 2, calls)
	})
}

func TestLeave(t *testing.T) {
	d := drivertest.NewDriver()
	var scripts []string
	d.SetEval(func(js string) (string, error) {
		scripts = append(scripts, js)
		return "clicked", nil
	})

	newTestJoiner(testConfig()).Leave(context.Background(), d)
	assert.Equal(t, []string{leaveScript, leaveConfirmScript}, scripts)
}

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/pliske/mprisctl/internal/config"
	"github.com/pliske/mprisctl/internal/domain"
	"github.com/pliske/mprisctl/internal/domain/mocks"
	"github.com/pliske/mprisctl/internal/template"
)

// newTestRunner builds a runner with captured output streams
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	r := NewRunner(&CLI{}, &config.Config{}, nil, zap.NewNop())
	r.stdout = stdout
	r.stderr = stderr
	return r, stdout, stderr
}

func mustCommand(t *testing.T, name string) commandFunc {
	t.Helper()
	cmd, ok := commandNamed(name)
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return cmd
}

// TestActionCommands verifies each playback verb checks its capability
// and then calls the matching player method
func TestActionCommands(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *mocks.MockPlayer)
	}{
		{
			name: "play",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Play(gomock.Any()).Return(nil)
			},
		},
		{
			name: "pause",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPause).Return(true, nil)
				m.EXPECT().Pause(gomock.Any()).Return(nil)
			},
		},
		{
			name: "play-pause",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().PlayPause(gomock.Any()).Return(nil)
			},
		},
		{
			name: "stop",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Stop(gomock.Any()).Return(nil)
			},
		},
		{
			name: "next",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanGoNext).Return(true, nil)
				m.EXPECT().Next(gomock.Any()).Return(nil)
			},
		},
		{
			name: "previous",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanGoPrevious).Return(true, nil)
				m.EXPECT().Previous(gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			player := mocks.NewMockPlayer(ctrl)
			tt.setupMock(player)

			r, _, _ := newTestRunner(t)
			handled, err := mustCommand(t, tt.name)(t.Context(), r, player, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !handled {
				t.Error("expected the command to be handled")
			}
		})
	}
}

func TestActionCommandSkipsWithoutCapability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	player := mocks.NewMockPlayer(ctrl)
	player.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(false, nil)

	r, _, _ := newTestRunner(t)
	handled, err := mustCommand(t, "play")(t.Context(), r, player, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if handled {
		t.Error("expected the player to be skipped")
	}
}

func TestActionCommandRejectsFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	player := mocks.NewMockPlayer(ctrl)

	r, _, _ := newTestRunner(t)
	r.format = "{{ status }}"
	_, err := mustCommand(t, "play")(t.Context(), r, player, nil)
	if !errors.Is(err, errNoFormat) {
		t.Fatalf("expected the format rejection, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupMock func(m *mocks.MockPlayer)
	}{
		{
			name: "Local Path Becomes File URI",
			args: []string{"/music/track.mp3"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().OpenURI(gomock.Any(), "file:///music/track.mp3").Return(nil)
			},
		},
		{
			name: "URL Passes Through",
			args: []string{"http://example.com/stream"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().OpenURI(gomock.Any(), "http://example.com/stream").Return(nil)
			},
		},
		{
			name:      "No URI Is A No-Op",
			args:      nil,
			setupMock: func(m *mocks.MockPlayer) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			player := mocks.NewMockPlayer(ctrl)
			tt.setupMock(player)

			r, _, _ := newTestRunner(t)
			handled, err := mustCommand(t, "open")(t.Context(), r, player, tt.args)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !handled {
				t.Error("expected the command to be handled")
			}
		})
	}
}

func TestOpenTarget(t *testing.T) {
	if got := openTarget("/music/a b.mp3"); got != "file:///music/a%20b.mp3" {
		t.Errorf("absolute path: got %q", got)
	}
	if got := openTarget("https://example.com/s.mp3"); got != "https://example.com/s.mp3" {
		t.Errorf("url: got %q", got)
	}
	if got := openTarget("file:///x.mp3"); got != "file:///x.mp3" {
		t.Errorf("file uri: got %q", got)
	}
	got := openTarget("song.mp3")
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/song.mp3") {
		t.Errorf("relative path: got %q", got)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		format     string
		setupMock  func(m *mocks.MockPlayer)
		wantOut    string
		wantErr    string
		wantHandle bool
	}{
		{
			name: "Prints Position In Seconds",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Position(gomock.Any()).Return(int64(125000000), nil)
			},
			wantOut:    "125.000000\n",
			wantHandle: true,
		},
		{
			name:   "Formats Position",
			format: "{{ duration(position) }}",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Position(gomock.Any()).Return(int64(125000000), nil)
			},
			wantOut:    "2:05\n",
			wantHandle: true,
		},
		{
			name: "Sets Absolute Position",
			args: []string{"5.5"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanSeek).Return(true, nil)
				m.EXPECT().SetPosition(gomock.Any(), int64(5500000)).Return(nil)
			},
			wantHandle: true,
		},
		{
			name: "Seeks Forward",
			args: []string{"5+"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanSeek).Return(true, nil)
				m.EXPECT().Seek(gomock.Any(), int64(5000000)).Return(nil)
			},
			wantHandle: true,
		},
		{
			name: "Seeks Backward",
			args: []string{"5-"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanSeek).Return(true, nil)
				m.EXPECT().Seek(gomock.Any(), int64(-5000000)).Return(nil)
			},
			wantHandle: true,
		},
		{
			name:      "Rejects Junk",
			args:      []string{"abc"},
			setupMock: func(m *mocks.MockPlayer) {},
			wantErr:   "Could not parse position as a number: abc",
		},
		{
			name: "Skips Players That Cannot Seek",
			args: []string{"5"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanSeek).Return(false, nil)
			},
		},
		{
			name:      "Rejects Format On Set",
			args:      []string{"5"},
			format:    "{{ position }}",
			setupMock: func(m *mocks.MockPlayer) {},
			wantErr:   errNoFormat.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			player := mocks.NewMockPlayer(ctrl)
			tt.setupMock(player)

			r, stdout, _ := newTestRunner(t)
			r.format = tt.format
			handled, err := mustCommand(t, "position")(t.Context(), r, player, tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if handled != tt.wantHandle {
				t.Errorf("handled: expected %v, got %v", tt.wantHandle, handled)
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout: expected %q, got %q", tt.wantOut, stdout.String())
			}
		})
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		format     string
		setupMock  func(m *mocks.MockPlayer)
		wantOut    string
		wantErr    string
		wantHandle bool
	}{
		{
			name: "Prints Volume",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Volume(gomock.Any()).Return(0.5, nil)
			},
			wantOut:    "0.500000\n",
			wantHandle: true,
		},
		{
			name:   "Formats Volume",
			format: "{{ volume }}",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Volume(gomock.Any()).Return(0.5, nil)
			},
			wantOut:    "0.5\n",
			wantHandle: true,
		},
		{
			name: "Sets Absolute Level",
			args: []string{"0.8"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanControl).Return(true, nil)
				m.EXPECT().SetVolume(gomock.Any(), 0.8).Return(nil)
			},
			wantHandle: true,
		},
		{
			name: "Raises Level",
			args: []string{"0.25+"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Volume(gomock.Any()).Return(0.5, nil)
				m.EXPECT().Can(gomock.Any(), domain.CanControl).Return(true, nil)
				m.EXPECT().SetVolume(gomock.Any(), 0.75).Return(nil)
			},
			wantHandle: true,
		},
		{
			name: "Lowers Level",
			args: []string{"0.25-"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Volume(gomock.Any()).Return(0.5, nil)
				m.EXPECT().Can(gomock.Any(), domain.CanControl).Return(true, nil)
				m.EXPECT().SetVolume(gomock.Any(), 0.25).Return(nil)
			},
			wantHandle: true,
		},
		{
			name:      "Rejects Junk",
			args:      []string{"x+"},
			setupMock: func(m *mocks.MockPlayer) {},
			wantErr:   "Could not parse volume as a number: x+",
		},
		{
			name: "Skips Players That Cannot Be Controlled",
			args: []string{"0.8"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanControl).Return(false, nil)
			},
		},
		{
			name:      "Rejects Format On Set",
			args:      []string{"0.8"},
			format:    "{{ volume }}",
			setupMock: func(m *mocks.MockPlayer) {},
			wantErr:   errNoFormat.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			player := mocks.NewMockPlayer(ctrl)
			tt.setupMock(player)

			r, stdout, _ := newTestRunner(t)
			r.format = tt.format
			handled, err := mustCommand(t, "volume")(t.Context(), r, player, tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if handled != tt.wantHandle {
				t.Errorf("handled: expected %v, got %v", tt.wantHandle, handled)
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout: expected %q, got %q", tt.wantOut, stdout.String())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		status  domain.PlayerStatus
		wantOut string
	}{
		{"Prints State", "", domain.StatusPlaying, "Playing\n"},
		{"Formats State", "{{ lc(status) }}", domain.StatusPlaying, "playing\n"},
		{"Unknown State", "", "", "Not available\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			player := mocks.NewMockPlayer(ctrl)
			player.EXPECT().Status(gomock.Any()).Return(tt.status, nil)

			r, stdout, _ := newTestRunner(t)
			r.format = tt.format
			handled, err := mustCommand(t, "status")(t.Context(), r, player, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !handled {
				t.Error("expected the command to be handled")
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout: expected %q, got %q", tt.wantOut, stdout.String())
			}
		})
	}
}

func testTrackMetadata() map[string]template.Value {
	return map[string]template.Value{
		"xesam:title":  template.StringValue("Roygbiv"),
		"xesam:artist": template.StringListValue("Boards of Canada"),
		"mpris:length": template.IntValue(148000000),
	}
}

func TestMetadata(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		format    string
		setupMock func(m *mocks.MockPlayer)
		wantOut   string
		wantErr   string
	}{
		{
			name: "Prints Everything Sorted",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Metadata(gomock.Any()).Return(testTrackMetadata(), nil)
			},
			wantOut: "mpris:length\t148000000\n" +
				"xesam:artist\tBoards of Canada\n" +
				"xesam:title\tRoygbiv\n",
		},
		{
			name: "Prints Requested Keys",
			args: []string{"artist", "title"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Metadata(gomock.Any()).Return(testTrackMetadata(), nil)
			},
			wantOut: "Boards of Canada\nRoygbiv\n",
		},
		{
			name: "Skips Absent Keys",
			args: []string{"album", "title"},
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Metadata(gomock.Any()).Return(testTrackMetadata(), nil)
			},
			wantOut: "Roygbiv\n",
		},
		{
			name:   "Formats With Aliases",
			format: "{{ artist }} - {{ title }} [{{ duration(mpris:length) }}]",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Metadata(gomock.Any()).Return(testTrackMetadata(), nil)
			},
			wantOut: "Boards of Canada - Roygbiv [2:28]\n",
		},
		{
			name:   "Explicit Key Wins Over Alias",
			format: "{{ artist }}",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Metadata(gomock.Any()).Return(map[string]template.Value{
					"artist":       template.StringValue("Player Supplied"),
					"xesam:artist": template.StringListValue("Boards of Canada"),
				}, nil)
			},
			wantOut: "Player Supplied\n",
		},
		{
			name:   "Unknown Function Discards Output",
			format: "{{ artist }} {{ bogus(title) }}",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(true, nil)
				m.EXPECT().Metadata(gomock.Any()).Return(testTrackMetadata(), nil)
			},
			wantErr: "[format error] unknown template function: bogus",
		},
		{
			name: "Skips Players With No Track",
			setupMock: func(m *mocks.MockPlayer) {
				m.EXPECT().Can(gomock.Any(), domain.CanPlay).Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			player := mocks.NewMockPlayer(ctrl)
			tt.setupMock(player)

			r, stdout, _ := newTestRunner(t)
			r.format = tt.format
			_, err := mustCommand(t, "metadata")(t.Context(), r, player, tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if stdout.String() != tt.wantOut {
				t.Errorf("stdout: expected %q, got %q", tt.wantOut, stdout.String())
			}
		})
	}
}

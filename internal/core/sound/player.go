package sound

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/trackhq/track/internal/core/models"
)

// Player makes the notification sound for a session type. Playback is
// best-effort: any failure degrades to the terminal bell and never reaches
// the visual notification path.
type Player struct {
	// Dir holds per-type sound files (study.mp3, meeting.mp3, ...). Empty
	// means bell-only.
	Dir string
	// Files overrides the file name per type ("study" -> "chime.wav").
	Files map[string]string
}

// Play plays the sound for the given type, falling back from the
// type-specific file to notification.mp3 to the terminal bell.
func (p *Player) Play(t models.SessionType) {
	if p != nil && p.Dir != "" {
		if path, ok := p.lookup(string(t)); ok && playFile(path) == nil {
			return
		}
		if path, ok := p.lookup("default"); ok && playFile(path) == nil {
			return
		}
	}
	bell()
}

func (p *Player) lookup(key string) (string, bool) {
	name := key + ".mp3"
	if key == "default" {
		name = "notification.mp3"
	}
	if override, ok := p.Files[key]; ok {
		name = override
	}
	path := filepath.Join(p.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// playFile shells out to whatever player the platform has. Blocking is
// fine; sounds are short and callers already treat Play as fire-and-forget.
func playFile(path string) error {
	var candidates []string
	if runtime.GOOS == "darwin" {
		candidates = []string{"afplay"}
	} else {
		candidates = []string{"paplay", "aplay", "mpv", "ffplay"}
	}
	for _, bin := range candidates {
		if _, err := exec.LookPath(bin); err != nil {
			continue
		}
		args := []string{path}
		switch bin {
		case "mpv":
			args = []string{"--really-quiet", path}
		case "ffplay":
			args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
		}
		return exec.Command(bin, args...).Run()
	}
	return fmt.Errorf("no audio player found")
}

func bell() {
	fmt.Fprint(os.Stderr, "\a")
}

package platform

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/plus3/pong/assets"
	"github.com/plus3/pong/game"
)

const (
	sampleRate = 44100
	toneVolume = 0.35
)

// Speaker implements game.Audio with one ebiten player per cue.
type Speaker struct {
	players map[game.Cue]*audio.Player
}

// NewSpeaker prepares the three cues, decoding WAV files from the bundle and
// synthesizing the ones it lacks.
func NewSpeaker(bundle *assets.Bundle) (*Speaker, error) {
	ctx := audio.NewContext(sampleRate)

	clips := []struct {
		cue   game.Cue
		wav   []byte
		notes []assets.Note
	}{
		{game.CueLeftHit, bundle.LeftHit, assets.LeftHitNotes},
		{game.CueRightHit, bundle.RightHit, assets.RightHitNotes},
		{game.CueScore, bundle.Score, assets.ScoreNotes},
	}

	s := &Speaker{players: make(map[game.Cue]*audio.Player, len(clips))}
	for _, clip := range clips {
		pcm, err := clipPCM(clip.wav, clip.notes)
		if err != nil {
			return nil, fmt.Errorf("%s sound: %w", clip.cue, err)
		}
		s.players[clip.cue] = ctx.NewPlayerFromBytes(pcm)
	}
	return s, nil
}

// clipPCM decodes the bundled WAV, or synthesizes notes when there is none.
func clipPCM(wavData []byte, notes []assets.Note) ([]byte, error) {
	if wavData == nil {
		return assets.Synthesize(sampleRate, toneVolume, notes...), nil
	}
	return decodeWAV(wavData)
}

func decodeWAV(data []byte) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return pcm, nil
}

// Play restarts the cue from the beginning.
func (s *Speaker) Play(cue game.Cue) error {
	p, ok := s.players[cue]
	if !ok {
		return fmt.Errorf("no sound for cue %s", cue)
	}
	if err := p.SetPosition(0); err != nil {
		return fmt.Errorf("rewind %s: %w", cue, err)
	}
	p.Play()
	return nil
}

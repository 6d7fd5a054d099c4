package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"
)

// Output constants
const (
	OutputExtension = ".xml"
	TempSuffix      = ".part"
)

// ErrUnreadableMIDI wraps parse failures of the input file
var ErrUnreadableMIDI = errors.New("cannot read MIDI file")

// Service converts MIDI files to MusicXML
type Service struct {
	logger *zap.Logger
}

// NewService creates a new conversion service
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// OutputPath returns <outputDir>/<input stem>.xml
func OutputPath(inputPath, outputDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+OutputExtension)
}

// Convert parses inputPath and writes a MusicXML score to outputPath. The
// output is written to a temporary file first so a failure never leaves a
// truncated score behind.
func (s *Service) Convert(ctx context.Context, inputPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	midiFile, err := smf.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrUnreadableMIDI, inputPath, err)
	}

	parsed, err := readMIDI(midiFile)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrUnreadableMIDI, inputPath, err)
	}

	title := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	score, err := buildScore(parsed, strings.ReplaceAll(title, "_", " "))
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeAtomic(outputPath, score); err != nil {
		return err
	}

	s.logger.Info("converted MIDI to MusicXML",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("parts", len(score.Parts)),
		zap.Int("measures", len(score.Parts[0].Measures)))
	return nil
}

// writeAtomic encodes score into outputPath via a temporary sibling file
func writeAtomic(outputPath string, score *ScorePartwise) error {
	tmp := outputPath + TempSuffix
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, score); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}

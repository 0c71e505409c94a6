package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/qa-video/internal/config"
	"github.com/nguyentantai21042004/qa-video/internal/logger"
	"google.golang.org/genai"
)

// Gemini TTS returns raw 16-bit little-endian mono PCM at 24kHz.
const (
	geminiSampleRate = 24000
	geminiBitDepth   = 16
)

type geminiEngine struct {
	apiKeys    []string
	currentKey int
	model      string
	voiceName  string
	logger     logger.Logger
}

// NewGemini creates an Engine that uses Gemini speech generation, rotating
// through apiKeys when one is rate limited.
func NewGemini(cfg config.GeminiConfig, apiKeys []string, log logger.Logger) (Engine, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("gemini engine needs GEMINI_API_KEYS or GEMINI_API_KEY")
	}
	return &geminiEngine{
		apiKeys:   apiKeys,
		model:     cfg.Model,
		voiceName: cfg.Voice,
		logger:    log,
	}, nil
}

// APIKeysFromEnv reads a comma separated GEMINI_API_KEYS, falling back to the
// single GEMINI_API_KEY.
func APIKeysFromEnv() []string {
	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (g *geminiEngine) Name() string {
	return "gemini"
}

// Speak ignores voice.Rate and voice.Volume; Gemini has no equivalent knobs.
func (g *geminiEngine) Speak(ctx context.Context, text string, voice Voice, outPath string) error {
	pcm, err := g.generate(ctx, text)
	if err != nil {
		return err
	}
	return WriteWAV(outPath, pcm)
}

// generate rotates API keys on 429 / quota errors.
func (g *geminiEngine) generate(ctx context.Context, text string) (PCM, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voiceName},
			},
		},
	}

	var lastErr error
	for range len(g.apiKeys) {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(text), cfg)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return PCM{}, fmt.Errorf("generate speech: %w", err)
		}

		data := inlineAudio(result)
		if len(data) == 0 {
			return PCM{}, errors.New("empty audio response from Gemini")
		}
		return pcmFromS16LE(data), nil
	}

	return PCM{}, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiEngine) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func inlineAudio(result *genai.GenerateContentResponse) []byte {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil
	}
	var data []byte
	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil {
			data = append(data, part.InlineData.Data...)
		}
	}
	return data
}

func pcmFromS16LE(data []byte) PCM {
	samples := make([]int, len(data)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(data[2*i:])))
	}
	return PCM{
		Samples:    samples,
		SampleRate: geminiSampleRate,
		Channels:   1,
		BitDepth:   geminiBitDepth,
	}
}

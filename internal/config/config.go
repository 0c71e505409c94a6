package config

import (
	"fmt"
	"time"
)

// Fallback policies for the encoder.
const (
	FallbackAlways      = "always"
	FallbackRecoverable = "recoverable"
)

// Speech engines.
const (
	EngineEspeak = "espeak"
	EngineGemini = "gemini"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Video       VideoConfig       `yaml:"video"`
	Theme       ThemeConfig       `yaml:"theme"`
	Speech      SpeechConfig      `yaml:"speech"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	SelfTest    SelfTestConfig    `yaml:"selftest"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type VideoConfig struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	FPS         int           `yaml:"fps"`
	Margin      int           `yaml:"margin"`
	FontSize    float64       `yaml:"font_size"`
	LineSpacing float64       `yaml:"line_spacing"`
	Pause       time.Duration `yaml:"pause"`
}

type ThemeConfig struct {
	Question Color `yaml:"question"`
	Answer   Color `yaml:"answer"`
	Pause    Color `yaml:"pause"`
	Text     Color `yaml:"text"`
}

type SpeechConfig struct {
	Engine string  `yaml:"engine"`
	Binary string  `yaml:"binary"`
	Rate   int     `yaml:"rate"`
	Volume float64 `yaml:"volume"`
}

// AudioProfile is one audio encoding attempt.
type AudioProfile struct {
	Codec   string   `yaml:"codec"`
	Bitrate string   `yaml:"bitrate"`
	Args    []string `yaml:"args"`
}

type FFmpegConfig struct {
	Binary         string       `yaml:"binary"`
	ProbeBinary    string       `yaml:"probe_binary"`
	VideoCodec     string       `yaml:"video_codec"`
	PixelFormat    string       `yaml:"pixel_format"`
	Primary        AudioProfile `yaml:"primary"`
	Fallback       AudioProfile `yaml:"fallback"`
	FallbackPolicy string       `yaml:"fallback_policy"`
}

type SelfTestConfig struct {
	Skip   bool     `yaml:"skip"`
	Player string   `yaml:"player"`
	Args   []string `yaml:"args"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	Voice string `yaml:"voice"`
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	_ = cfg.Validate()
	return cfg
}

// Validate fills unset fields with defaults and rejects values the pipeline
// cannot work with.
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("video size must be positive, got %dx%d", c.Video.Width, c.Video.Height)
	}
	// yuv420p needs even dimensions
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return fmt.Errorf("video size must be even, got %dx%d", c.Video.Width, c.Video.Height)
	}
	if 2*c.Video.Margin >= c.Video.Width {
		return fmt.Errorf("video.margin %d leaves no room for text", c.Video.Margin)
	}
	if c.Video.Pause < 0 {
		return fmt.Errorf("video.pause must not be negative")
	}
	if c.Speech.Volume < 0 || c.Speech.Volume > 1 {
		return fmt.Errorf("speech.volume must be within [0, 1], got %v", c.Speech.Volume)
	}
	switch c.Speech.Engine {
	case EngineEspeak, EngineGemini:
	default:
		return fmt.Errorf("speech.engine %q is not supported", c.Speech.Engine)
	}
	switch c.FFmpeg.FallbackPolicy {
	case FallbackAlways, FallbackRecoverable:
	default:
		return fmt.Errorf("ffmpeg.fallback_policy %q is not supported", c.FFmpeg.FallbackPolicy)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "temp"
	}

	if c.Video.Width == 0 {
		c.Video.Width = 1280
	}
	if c.Video.Height == 0 {
		c.Video.Height = 720
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = 24
	}
	if c.Video.Margin == 0 {
		c.Video.Margin = 60
	}
	if c.Video.FontSize == 0 {
		c.Video.FontSize = 48
	}
	if c.Video.LineSpacing == 0 {
		c.Video.LineSpacing = 1.5
	}
	if c.Video.Pause == 0 {
		c.Video.Pause = 500 * time.Millisecond
	}

	if !c.Theme.Question.set {
		c.Theme.Question = RGB(0, 0, 128)
	}
	if !c.Theme.Answer.set {
		c.Theme.Answer = RGB(0, 64, 0)
	}
	if !c.Theme.Pause.set {
		c.Theme.Pause = RGB(0, 0, 0)
	}
	if !c.Theme.Text.set {
		c.Theme.Text = RGB(255, 255, 255)
	}

	if c.Speech.Engine == "" {
		c.Speech.Engine = EngineEspeak
	}
	if c.Speech.Binary == "" {
		c.Speech.Binary = "espeak-ng"
	}
	if c.Speech.Rate == 0 {
		c.Speech.Rate = 150
	}
	if c.Speech.Volume == 0 {
		c.Speech.Volume = 0.9
	}

	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.PixelFormat == "" {
		c.FFmpeg.PixelFormat = "yuv420p"
	}
	if c.FFmpeg.Primary.Codec == "" {
		c.FFmpeg.Primary = AudioProfile{
			Codec:   "aac",
			Bitrate: "192k",
			Args:    []string{"-strict", "-2", "-ac", "2", "-ar", "44100"},
		}
	}
	if c.FFmpeg.Fallback.Codec == "" {
		c.FFmpeg.Fallback = AudioProfile{
			Codec:   "libmp3lame",
			Bitrate: "192k",
			Args:    []string{"-ac", "2"},
		}
	}
	if c.FFmpeg.FallbackPolicy == "" {
		c.FFmpeg.FallbackPolicy = FallbackAlways
	}

	if c.SelfTest.Player == "" {
		c.SelfTest.Player = "ffplay"
		c.SelfTest.Args = []string{"-nodisp", "-autoexit", "-loglevel", "error"}
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash-preview-tts"
	}
	if c.Gemini.Voice == "" {
		c.Gemini.Voice = "Kore"
	}
}

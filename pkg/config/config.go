package config

import (
	"os"
	"strconv"
	"time"

	"github.com/polyquery/research-aggregator/pkg/merge"
)

type Config struct {
	OpenAIApiKey    string
	AnthropicApiKey string
	GoogleApiKey    string
	DatabaseURL     string
	Port            string

	OpenAIModel    string
	AnthropicModel string
	GoogleModel    string

	PlatformTimeout time.Duration

	EmbeddingModel string
	CollectionName string

	ReasoningModel string

	Merge MergeTuning
}

// MergeTuning exposes the merge pipeline's numeric knobs through the
// environment. The section taxonomy itself stays in merge.DefaultConfig;
// tests substitute alternates directly on merge.Config.
type MergeTuning struct {
	MinSentenceLen     int
	FallbackCharLimit  int
	MinReportLen       int
	MaxReportLen       int
	MinReportLines     int
	IntroductionCap    int
	FindingsCap        int
	AnalysisCap        int
	RecommendationsCap int
}

func Load() *Config {
	return &Config{
		OpenAIApiKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicApiKey: getEnv("ANTHROPIC_API_KEY", ""),
		GoogleApiKey:    getEnv("GOOGLE_API_KEY", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Port:            getEnv("PORT", "8081"),
		OpenAIModel:     getEnv("OPENAI_MODEL", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", ""),
		GoogleModel:     getEnv("GOOGLE_MODEL", ""),
		PlatformTimeout: time.Duration(getEnvAsInt("PLATFORM_TIMEOUT_SECONDS", 120)) * time.Second,
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		CollectionName:  getEnv("COLLECTION_NAME", "research_memory"),
		ReasoningModel:  getEnv("REASONING_MODEL", "gemini-2.0-flash"),
		Merge: MergeTuning{
			MinSentenceLen:     getEnvAsInt("MERGE_MIN_SENTENCE_LEN", 10),
			FallbackCharLimit:  getEnvAsInt("MERGE_FALLBACK_CHAR_LIMIT", 3000),
			MinReportLen:       getEnvAsInt("MERGE_MIN_REPORT_LEN", 100),
			MaxReportLen:       getEnvAsInt("MERGE_MAX_REPORT_LEN", 50000),
			MinReportLines:     getEnvAsInt("MERGE_MIN_REPORT_LINES", 3),
			IntroductionCap:    getEnvAsInt("MERGE_INTRODUCTION_CAP", 3),
			FindingsCap:        getEnvAsInt("MERGE_FINDINGS_CAP", 7),
			AnalysisCap:        getEnvAsInt("MERGE_ANALYSIS_CAP", 4),
			RecommendationsCap: getEnvAsInt("MERGE_RECOMMENDATIONS_CAP", 5),
		},
	}
}

// MergeConfig maps the environment tuning onto the merge defaults.
func (c *Config) MergeConfig() merge.Config {
	cfg := merge.DefaultConfig()
	cfg.MinSentenceLen = c.Merge.MinSentenceLen
	cfg.FallbackCharLimit = c.Merge.FallbackCharLimit
	cfg.MinReportLen = c.Merge.MinReportLen
	cfg.MaxReportLen = c.Merge.MaxReportLen
	cfg.MinReportLines = c.Merge.MinReportLines

	caps := map[string]int{
		"introduction":    c.Merge.IntroductionCap,
		"findings":        c.Merge.FindingsCap,
		"analysis":        c.Merge.AnalysisCap,
		"recommendations": c.Merge.RecommendationsCap,
	}
	for i := range cfg.Sections {
		if cap, ok := caps[cfg.Sections[i].Name]; ok {
			cfg.Sections[i].Cap = cap
		}
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/skills"
	"github.com/spigell/resume-ranker/internal/textextract"
)

// newEngine wires the ranking engine from the configuration.
func newEngine(config *Config, logger *zap.Logger) (*ranking.Engine, error) {
	tokenizer, err := skills.ParseTokenizer(config.Skills.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("skills.tokenizer: %w", err)
	}

	policy, err := skills.ParsePolicy(config.Skills.Policy)
	if err != nil {
		return nil, fmt.Errorf("skills.policy: %w", err)
	}

	technical := skills.DefaultTechnical()
	if len(config.Skills.Technical) > 0 {
		technical = skills.NewVocabulary(skills.Technical, config.Skills.Technical...)
	}

	soft := skills.DefaultSoft()
	if len(config.Skills.Soft) > 0 {
		soft = skills.NewVocabulary(skills.Soft, config.Skills.Soft...)
	}

	matcher := skills.NewMatcher(tokenizer, policy)

	logger.Debug("skill matching configured",
		zap.String("tokenizer", matcher.Tokenizer().Name()),
		zap.String("policy", string(matcher.Policy())),
		zap.Int("technical_skills", technical.Len()),
		zap.Int("soft_skills", soft.Len()),
		zap.Duration("extract_timeout", config.Extract.Timeout),
	)

	return ranking.New(ranking.Options{
		Extractor:      textextract.NewPDF(logger),
		Matcher:        matcher,
		Technical:      technical,
		Soft:           soft,
		ExtractTimeout: config.Extract.Timeout,
		Logger:         logger,
	})
}

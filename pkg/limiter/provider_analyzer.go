package limiter

import (
	"context"

	"github.com/rahulkamble366/iso/pkg/analyzer"

	"golang.org/x/time/rate"
)

type Analyzer interface {
	Limiter
	analyzer.Provider
}

type limitedAnalyzer struct {
	limiter  *rate.Limiter
	provider analyzer.Provider
}

func NewAnalyzer(l *rate.Limiter, p analyzer.Provider) Analyzer {
	return &limitedAnalyzer{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedAnalyzer) limiterSetup() {
}

func (p *limitedAnalyzer) Analyze(ctx context.Context, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Result, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Analyze(ctx, file, options)
}

package flow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/metrics"
)

// Verifier checks a harvest photo.
type Verifier interface {
	VerifyHarvestPhoto(ctx context.Context, in ai.VerifyInput) (*ai.VerifyOutput, error)
}

// CachedVerifier memoizes verification results by herb name and photo.
type CachedVerifier struct {
	next  Verifier
	cache *lru.Cache[string, ai.VerifyOutput]
}

// NewCachedVerifier wraps next with an LRU of size entries.
func NewCachedVerifier(next Verifier, size int) (*CachedVerifier, error) {
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[string, ai.VerifyOutput](size)
	if err != nil {
		return nil, eris.Wrap(err, "flow: create verify cache")
	}
	return &CachedVerifier{next: next, cache: cache}, nil
}

// VerifyHarvestPhoto returns a cached result or calls the wrapped verifier.
// Errors are not cached.
func (c *CachedVerifier) VerifyHarvestPhoto(ctx context.Context, in ai.VerifyInput) (*ai.VerifyOutput, error) {
	key := verifyKey(in)
	if out, ok := c.cache.Get(key); ok {
		metrics.VerifyCacheHits.Inc()
		zap.L().Debug("verify cache hit", zap.String("herb", in.HerbName))
		return &out, nil
	}

	out, err := c.next.VerifyHarvestPhoto(ctx, in)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, *out)
	return out, nil
}

func verifyKey(in ai.VerifyInput) string {
	h := sha256.New()
	h.Write([]byte(in.HerbName))
	h.Write([]byte{0})
	h.Write([]byte(in.PhotoDataURI))
	return hex.EncodeToString(h.Sum(nil))
}

// verify runs the verifier and turns a negative verdict into RejectedError.
func verify(ctx context.Context, v Verifier, herbName, dataURI string) error {
	out, err := v.VerifyHarvestPhoto(ctx, ai.VerifyInput{PhotoDataURI: dataURI, HerbName: herbName})
	if err != nil {
		return eris.Wrap(err, "flow: verify photo")
	}
	if !out.IsPhotoGenuine {
		zap.L().Info("photo rejected", zap.String("herb", herbName), zap.String("reason", out.Reason))
		return &RejectedError{Reason: out.Reason}
	}
	return nil
}

package rfm

import (
	"errors"
	"fmt"

	"rfm-segmentation/internal/model"
)

var ErrUnmappedScore = errors.New("score pair has no segment")

// SegmentFor maps a recency/frequency score pair to its segment.
func SegmentFor(recencyScore, frequencyScore int) (model.Segment, error) {
	if frequencyScore < 1 || frequencyScore > Buckets {
		return "", fmt.Errorf("%w: %d%d", ErrUnmappedScore, recencyScore, frequencyScore)
	}
	switch recencyScore {
	case 1, 2:
		switch frequencyScore {
		case 1, 2:
			return model.Hibernating, nil
		case 3, 4:
			return model.AtRisk, nil
		case 5:
			return model.CantLoose, nil
		}
	case 3:
		switch frequencyScore {
		case 1, 2:
			return model.AboutToSleep, nil
		case 3:
			return model.NeedAttention, nil
		case 4, 5:
			return model.LoyalCustomers, nil
		}
	case 4:
		switch frequencyScore {
		case 1:
			return model.Promising, nil
		case 2, 3:
			return model.PotentialLoyalists, nil
		case 4, 5:
			return model.LoyalCustomers, nil
		}
	case 5:
		switch frequencyScore {
		case 1:
			return model.NewCustomers, nil
		case 2, 3:
			return model.PotentialLoyalists, nil
		case 4, 5:
			return model.Champions, nil
		}
	}
	return "", fmt.Errorf("%w: %d%d", ErrUnmappedScore, recencyScore, frequencyScore)
}

// Segment labels every scored customer. The input is not modified.
func Segment(scored []model.ScoredCustomer) ([]model.ScoredCustomer, error) {
	out := make([]model.ScoredCustomer, len(scored))
	for i, s := range scored {
		seg, err := SegmentFor(s.RecencyScore, s.FrequencyScore)
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", s.CustomerID, err)
		}
		s.Segment = seg
		out[i] = s
	}
	return out, nil
}

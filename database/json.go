package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/utils"
)

// LoadJSON decodes a collection into dst. A missing collection and an
// undecodable payload both report found=false, and dst must then be treated
// as empty. Only store failures come back as errors.
func LoadJSON(ctx context.Context, s Store, name string, dst interface{}) (bool, error) {
	raw, err := s.Load(ctx, name)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"collection": name,
			"error":      err,
		}).Warn("Malformed collection treated as empty")
		return false, nil
	}
	return true, nil
}

func SaveJSON(ctx context.Context, s Store, name string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.Save(ctx, name, raw); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

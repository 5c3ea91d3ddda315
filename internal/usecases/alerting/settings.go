package alerting

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/domain"
	"github.com/vfg2006/traffic-anomaly-alerts/pkg/utils"
)

// LoadSettings lê limites, semanas de média e email do dashboard e valida os valores
func LoadSettings(ctx context.Context, store TrackingStore) (*domain.AlertSettings, error) {
	settings := &domain.AlertSettings{}

	for _, metric := range domain.Metrics {
		raw, err := store.GetValue(ctx, metric.ThresholdRange())
		if err != nil {
			return nil, NewAlertError(err, CodeTracking, fmt.Sprintf("falha ao ler limite de %s", metric))
		}

		ratio, err := parseThreshold(metric, raw)
		if err != nil {
			return nil, err
		}
		settings.Thresholds.Set(metric, ratio)
	}

	rawWeeks, err := store.GetValue(ctx, domain.RangeAveragingWeeks)
	if err != nil {
		return nil, NewAlertError(err, CodeTracking, "falha ao ler semanas de média")
	}

	weeks, err := strconv.Atoi(strings.TrimSpace(rawWeeks))
	if err != nil || weeks < 1 {
		return nil, NewAlertError(ErrConfiguration, CodeConfiguration,
			fmt.Sprintf("averaging weeks must be a whole number of at least 1, got %q; fix the %q value", rawWeeks, domain.RangeAveragingWeeks))
	}
	settings.AveragingWeeks = weeks

	email, err := store.GetValue(ctx, domain.RangeEmail)
	if err != nil {
		return nil, NewAlertError(err, CodeTracking, "falha ao ler email de notificação")
	}
	settings.Email = strings.TrimSpace(email)

	return settings, nil
}

// ValidateSettings rejeita o email de exemplo antes de qualquer alteração no dashboard
func ValidateSettings(settings *domain.AlertSettings) error {
	if strings.EqualFold(settings.Email, domain.PlaceholderEmail) {
		return NewAlertError(ErrConfiguration, CodeConfiguration,
			fmt.Sprintf("notification email is still the placeholder %s; set the %q value to a real address or leave it blank to skip emails", domain.PlaceholderEmail, domain.RangeEmail))
	}
	return nil
}

func parseThreshold(metric domain.Metric, raw string) (*decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, domain.NoAlert) {
		return nil, nil
	}

	ratio, err := utils.ParseDecimal(value)
	if err != nil {
		return nil, NewAlertError(ErrConfiguration, CodeConfiguration,
			fmt.Sprintf("threshold for %s must be a number or %q, got %q; fix the %q value", metric, domain.NoAlert, raw, metric.ThresholdRange()))
	}

	return &ratio, nil
}

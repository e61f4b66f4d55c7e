package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rankforge/audit-service/internal/entity"
)

const (
	TitleMaxLen       = 255
	ContactNameMaxLen = 255
	MaxCompetitors    = 20
	MaxKeywords       = 100
)

// ValidateWebsiteURL requires an absolute http(s) URL with a host.
func ValidateWebsiteURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: website url %q: %s", entity.ErrValidation, raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: website url %q must use http or https", entity.ErrValidation, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: website url %q has no host", entity.ErrValidation, raw)
	}

	return nil
}

// NormalizeWebsiteURL lowercases the host and strips a trailing slash so
// duplicate checks compare like with like.
func NormalizeWebsiteURL(raw string) (string, error) {
	err := ValidateWebsiteURL(raw)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: website url %q: %s", entity.ErrValidation, raw, err)
	}

	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String(), nil
}

func validateSubmission(sub entity.IntakeSubmission) error {
	if sub.ClientID.IsNil() {
		return fmt.Errorf("%w: client id is required", entity.ErrValidation)
	}

	err := ValidateWebsiteURL(sub.WebsiteURL)
	if err != nil {
		return err
	}

	if sub.StagingURL != "" {
		err = ValidateWebsiteURL(sub.StagingURL)
		if err != nil {
			return err
		}
	}

	cms := entity.CMS(strings.ToLower(strings.TrimSpace(sub.CMS)))

	err = cms.Validate()
	if err != nil {
		return err
	}

	if len(sub.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: at most %d keywords", entity.ErrValidation, MaxKeywords)
	}

	for _, kw := range sub.Keywords {
		if strings.TrimSpace(kw.Phrase) == "" {
			return fmt.Errorf("%w: keyword phrase is required", entity.ErrValidation)
		}

		err = entity.KeywordIntent(strings.ToLower(strings.TrimSpace(kw.Intent))).Validate()
		if err != nil {
			return err
		}
	}

	if len(sub.Competitors) > MaxCompetitors {
		return fmt.Errorf("%w: at most %d competitors", entity.ErrValidation, MaxCompetitors)
	}

	seen := make(map[string]struct{}, len(sub.Competitors))

	for _, c := range sub.Competitors {
		normalized, err := NormalizeWebsiteURL(c.WebsiteURL)
		if err != nil {
			return err
		}

		if _, ok := seen[normalized]; ok {
			return fmt.Errorf("%w: duplicate competitor url %q", entity.ErrValidation, c.WebsiteURL)
		}

		seen[normalized] = struct{}{}
	}

	return nil
}

func validateRawFinding(raw entity.RawFinding) error {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return fmt.Errorf("%w: finding title is required", entity.ErrValidation)
	}

	if len(title) > TitleMaxLen {
		return fmt.Errorf("%w: finding title exceeds %d characters", entity.ErrValidation, TitleMaxLen)
	}

	return nil
}

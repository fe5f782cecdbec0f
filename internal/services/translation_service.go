package services

import (
	"context"
	"fmt"

	"menucraft/internal/events"
	"menucraft/internal/models"
	"menucraft/internal/repositories"

	"github.com/google/uuid"
)

// TranslationClient is the outbound machine-translation collaborator. Texts
// translate positionally: result[i] is the translation of texts[i].
type TranslationClient interface {
	Translate(ctx context.Context, texts []string, sourceLocale, targetLocale string) ([]string, error)
}

type TranslationService interface {
	// RefreshEntity re-translates an entity's name and description into every
	// configured locale. Manual rows survive; a locale that fails is recorded
	// and skipped without blocking the others.
	RefreshEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error
	ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) ([]*models.Translation, error)
	SetManual(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, locale, field, value string) error
}

type translationService struct {
	translationRepo    repositories.TranslationRepository
	categoryRepo       repositories.CategoryRepository
	foodItemRepo       repositories.FoodItemRepository
	addOnGroupRepo     repositories.AddOnGroupRepository
	addOnRepo          repositories.AddOnRepository
	variationGroupRepo repositories.VariationGroupRepository
	variationRepo      repositories.VariationRepository
	client             TranslationClient
	recorder           events.Recorder
	sourceLocale       string
	targetLocales      []string
}

func NewTranslationService(
	translationRepo repositories.TranslationRepository,
	categoryRepo repositories.CategoryRepository,
	foodItemRepo repositories.FoodItemRepository,
	addOnGroupRepo repositories.AddOnGroupRepository,
	addOnRepo repositories.AddOnRepository,
	variationGroupRepo repositories.VariationGroupRepository,
	variationRepo repositories.VariationRepository,
	client TranslationClient,
	recorder events.Recorder,
	sourceLocale string,
	targetLocales []string,
) TranslationService {
	return &translationService{
		translationRepo:    translationRepo,
		categoryRepo:       categoryRepo,
		foodItemRepo:       foodItemRepo,
		addOnGroupRepo:     addOnGroupRepo,
		addOnRepo:          addOnRepo,
		variationGroupRepo: variationGroupRepo,
		variationRepo:      variationRepo,
		client:             client,
		recorder:           recorder,
		sourceLocale:       sourceLocale,
		targetLocales:      targetLocales,
	}
}

func (s *translationService) RefreshEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) error {
	fields, err := s.sourceFields(ctx, tenantID, entityType, entityID)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	texts := make([]string, 0, len(fields))
	for field, text := range fields {
		names = append(names, field)
		texts = append(texts, text)
	}

	for _, locale := range s.targetLocales {
		if locale == s.sourceLocale {
			continue
		}
		translated, terr := s.client.Translate(ctx, texts, s.sourceLocale, locale)
		if terr != nil {
			s.recorder.SwallowedError(entityType, entityID, events.KindTranslation, terr)
			continue
		}
		if len(translated) != len(texts) {
			s.recorder.SwallowedError(entityType, entityID, events.KindTranslation,
				fmt.Errorf("locale %s: got %d translations for %d texts", locale, len(translated), len(texts)))
			continue
		}
		rows := make([]*models.Translation, 0, len(translated))
		for i, value := range translated {
			rows = append(rows, &models.Translation{
				ID:         uuid.New(),
				TenantID:   tenantID,
				EntityType: entityType,
				EntityID:   entityID,
				Locale:     locale,
				Field:      names[i],
				Value:      value,
				Status:     models.TranslationStatusMachine,
			})
		}
		if uerr := s.translationRepo.UpsertMany(ctx, rows); uerr != nil {
			return fmt.Errorf("failed to store translations for locale %s: %w", locale, uerr)
		}
	}
	return nil
}

func (s *translationService) ListByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) ([]*models.Translation, error) {
	return s.translationRepo.ListByEntity(ctx, tenantID, entityType, entityID)
}

func (s *translationService) SetManual(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, locale, field, value string) error {
	return s.translationRepo.Upsert(ctx, &models.Translation{
		ID:         uuid.New(),
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Locale:     locale,
		Field:      field,
		Value:      value,
		Status:     models.TranslationStatusManual,
	})
}

// sourceFields pulls the translatable text of an entity. Empty fields are
// dropped so the client never sees blank inputs.
func (s *translationService) sourceFields(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID) (map[string]string, error) {
	fields := make(map[string]string)
	switch entityType {
	case models.EntityTypeCategory:
		category, err := s.categoryRepo.GetByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, err
		}
		fields["name"] = category.Name
		fields["description"] = category.Description
	case models.EntityTypeFoodItem:
		item, err := s.foodItemRepo.GetByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, err
		}
		fields["name"] = item.Name
		fields["description"] = item.Description
	case models.EntityTypeAddOnGroup:
		group, err := s.addOnGroupRepo.GetByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, err
		}
		fields["name"] = group.Name
		fields["description"] = group.Description
	case models.EntityTypeAddOn:
		addon, err := s.addOnRepo.GetByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, err
		}
		fields["name"] = addon.Name
	case models.EntityTypeVariationGroup:
		group, err := s.variationGroupRepo.GetByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, err
		}
		fields["name"] = group.Name
		fields["description"] = group.Description
	case models.EntityTypeVariation:
		variation, err := s.variationRepo.GetByID(ctx, tenantID, entityID)
		if err != nil {
			return nil, err
		}
		fields["name"] = variation.Name
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	for field, text := range fields {
		if text == "" {
			delete(fields, field)
		}
	}
	return fields, nil
}

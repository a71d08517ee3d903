package generation

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/xgenie/xgenie-api/internal/platform/logger"
	"github.com/xgenie/xgenie-api/internal/redact"
)

// Default model selection values.
const (
	// DefaultBaselineModel is used when discovery fails or finds nothing usable.
	DefaultBaselineModel = "gemini-1.5-flash"
)

// DefaultPriorityModels is the preferred model order.
func DefaultPriorityModels() []string {
	return []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-flash-latest"}
}

// Catalog is the set of generation-capable models discovered for one call.
type Catalog struct {
	// Models holds model identifiers in provider order, without duplicates.
	Models []string

	// Selected is the model the first attempt will use.
	Selected string

	// Discovered is false when Models is the baseline fallback.
	Discovered bool
}

// Contains reports whether the catalog includes the model.
func (c Catalog) Contains(model string) bool {
	return slices.Contains(c.Models, model)
}

// CatalogResolver discovers and ranks models for a credential.
type CatalogResolver struct {
	lister   ModelLister
	priority []string
	baseline string
	logger   *slog.Logger
}

// NewCatalogResolver creates a resolver. Empty priority or baseline values
// fall back to the package defaults.
func NewCatalogResolver(lister ModelLister, priority []string, baseline string, log *slog.Logger) *CatalogResolver {
	if len(priority) == 0 {
		priority = DefaultPriorityModels()
	}
	if baseline == "" {
		baseline = DefaultBaselineModel
	}
	if log == nil {
		log = slog.Default()
	}
	return &CatalogResolver{
		lister:   lister,
		priority: slices.Clone(priority),
		baseline: baseline,
		logger:   log,
	}
}

// Priority returns a copy of the priority list.
func (r *CatalogResolver) Priority() []string {
	return slices.Clone(r.priority)
}

// Resolve lists the models available to apiKey and selects one. It never
// fails: listing errors and empty results degrade to the baseline model.
func (r *CatalogResolver) Resolve(ctx context.Context, apiKey string) Catalog {
	log := logger.FromContextOrDefault(ctx, r.logger)

	models, err := r.lister.ListModels(ctx, apiKey)
	if err != nil {
		log.WarnContext(ctx, "model discovery failed, using baseline model",
			slog.String("baseline_model", r.baseline),
			slog.String("error", redact.Credentials(err.Error())))
		return r.fallback()
	}

	ids := FilterGenerationModels(models)
	if len(ids) == 0 {
		log.WarnContext(ctx, "model discovery returned no generation models, using baseline model",
			slog.Int("listed", len(models)),
			slog.String("baseline_model", r.baseline))
		return r.fallback()
	}

	catalog := Catalog{
		Models:     ids,
		Selected:   r.selectModel(ids),
		Discovered: true,
	}

	log.DebugContext(ctx, "discovered models",
		slog.Any("models", ids),
		slog.String("selected_model", catalog.Selected))

	return catalog
}

func (r *CatalogResolver) fallback() Catalog {
	return Catalog{
		Models:   []string{r.baseline},
		Selected: r.baseline,
	}
}

func (r *CatalogResolver) selectModel(ids []string) string {
	for _, preferred := range r.priority {
		if slices.Contains(ids, preferred) {
			return preferred
		}
	}
	return ids[0]
}

// FilterGenerationModels keeps the models that support content generation,
// strips the "models/" prefix and drops duplicates while preserving order.
func FilterGenerationModels(models []ModelInfo) []string {
	ids := make([]string, 0, len(models))
	for _, m := range models {
		if !slices.Contains(m.SupportedActions, ActionGenerateContent) {
			continue
		}
		id := TrimModelName(m.Name)
		if id == "" || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// TrimModelName removes the "models/" resource prefix from a model name.
func TrimModelName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "models/")
}

package http

import (
	"errors"
	"net/http"

	"foodloss/internal/core"
	applog "foodloss/internal/log"
)

func (s *Server) handleIngredients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.handleListIngredients(w, r)
	case http.MethodPost:
		s.handleCreateIngredient(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentInventory)

	parser := NewRequestBodyParser(w, r)
	if err := parser.Parse(); err != nil {
		logger.WarnContext(ctx, "Malformed ingredient request", applog.FieldError, err)
		BadRequestError(msgMalformedBody).Write(w)
		return
	}

	in := core.NewIngredient{
		Name:            parser.String("name"),
		PurchaseDate:    parser.String("purchaseDate"),
		StorageLocation: core.StorageLocation(parser.String("storageLocation")),
	}

	id, err := s.inventory.RegisterIngredient(ctx, in)
	if err != nil {
		var ve *core.ValidationError
		if errors.As(err, &ve) {
			logger.WarnContext(ctx, "Ingredient validation failed",
				"field", ve.Field,
				applog.FieldError, ve.Err,
				applog.FieldErrorType, applog.ErrorTypeValidation)
			BadRequestError(ingredientValidationMessage(ve)).Write(w)
			return
		}
		logger.ErrorContext(ctx, "Ingredient registration failed",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeDatabase)
		InternalError(msgIngredientFailed + err.Error()).Write(w)
		return
	}

	logger.InfoContext(ctx, "Ingredient registered",
		applog.NewFields().WithIngredient(id, in.Name, string(in.StorageLocation)).ToSlice()...)
	Created(msgIngredientCreated, id).Write(w)
}

func ingredientValidationMessage(ve *core.ValidationError) string {
	switch {
	case errors.Is(ve.Err, core.ErrInvalidPurchaseDate):
		return msgInvalidDate
	case errors.Is(ve.Err, core.ErrNameTooLong):
		return msgNameTooLong
	default:
		return msgRequiredFields
	}
}

func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := s.inventory.ListIngredients(ctx)
	if err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentInventory).ErrorContext(ctx, "Ingredient listing failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpList)
		InternalError(msgListFailed + err.Error()).Write(w)
		return
	}

	NewJSONResponse().Field("ingredients", toIngredientResponses(items)).Write(w)
}

func (s *Server) handleContribution(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx := r.Context()
	summary, err := s.inventory.Contribution(ctx)
	if err != nil {
		applog.FromContext(ctx).WithComponent(applog.ComponentInventory).ErrorContext(ctx, "Contribution summary failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpAggregate)
		InternalError(msgContributionFailed + err.Error()).Write(w)
		return
	}

	NewJSONResponse().
		Field("total_g", summary.TotalGrams).
		Field("co2_equivalent_kg", summary.CO2EquivalentKg).
		Field("saved_amount_yen", summary.SavedAmountYen).
		Write(w)
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx := r.Context()
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentInventory)

	parser := NewRequestBodyParser(w, r)
	if err := parser.Parse(); err != nil {
		logger.WarnContext(ctx, "Malformed contribution request", applog.FieldError, err)
		BadRequestError(msgMalformedBody).Write(w)
		return
	}

	grams, ok := parser.Number("amount_g")
	if !ok {
		logger.WarnContext(ctx, "Contribution amount missing or not a number",
			applog.FieldErrorType, applog.ErrorTypeValidation)
		BadRequestError(msgInvalidAmount).Write(w)
		return
	}

	id, err := s.inventory.AddContribution(ctx, grams)
	if err != nil {
		if core.IsValidation(err) {
			logger.WarnContext(ctx, "Contribution validation failed",
				applog.FieldAmountGrams, grams,
				applog.FieldErrorType, applog.ErrorTypeValidation)
			BadRequestError(msgInvalidAmount).Write(w)
			return
		}
		logger.ErrorContext(ctx, "Contribution insert failed",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeDatabase)
		InternalError(msgAddFailed + err.Error()).Write(w)
		return
	}

	logger.InfoContext(ctx, "Contribution added", "id", id, applog.FieldAmountGrams, grams)
	Created(msgContributionAdded, id).Write(w)
}

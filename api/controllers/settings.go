package controllers

import (
	"net/http"

	"github.com/nourzaidi/nourfashion-backend/api/responses"
	"github.com/nourzaidi/nourfashion-backend/api/validators"
	settingssvc "github.com/nourzaidi/nourfashion-backend/internal/settings"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
)

// SettingsFetch serves the storefront settings the public client needs.
func SettingsFetch(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			settingssvc.KeyWhatsAppNumber: svc.WhatsAppNumber(r.Context()),
		})
	}
}

type updateSettingsRequest struct {
	WhatsAppNumber string `json:"whatsapp_number" validate:"required"`
}

// SettingsUpdate saves the WhatsApp number used for order hand-off.
func SettingsUpdate(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveWhatsAppNumber(r.Context(), payload.WhatsAppNumber); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			settingssvc.KeyWhatsAppNumber: payload.WhatsAppNumber,
		})
	}
}

package handlers

import (
	"botrental/internal/usecase"
)

// Handler bundles the use cases the HTTP surface exposes.
type Handler struct {
	Auth    *usecase.AuthUseCase
	Rentals *usecase.RentalUseCase
	Admin   *usecase.AdminUseCase
}

func NewHandler(auth *usecase.AuthUseCase, rentals *usecase.RentalUseCase, admin *usecase.AdminUseCase) *Handler {
	return &Handler{
		Auth:    auth,
		Rentals: rentals,
		Admin:   admin,
	}
}

package service

import "promo-insights-be/internal/pkg/serverutils"

func errUnknownFilterField(field string) error {
	return serverutils.NewBadRequest("Unknown filter field: %s", field)
}

func errUnknownView(view string) error {
	return serverutils.NewBadRequest("Unknown view: %s", view)
}

func errSessionNotFound() error {
	return serverutils.NewNotFound("Chat session not found")
}

func errSessionBusy() error {
	return serverutils.NewConflict("A request is already in flight for this session")
}

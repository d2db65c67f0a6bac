// Package tui предоставляет reusable Bubble Tea message types.
package tui

// saveSuccessMsg — сообщение об успешном сохранении CSV.
type saveSuccessMsg struct {
	path    string
	records int
}

// saveErrorMsg — сообщение об ошибке сохранения.
type saveErrorMsg struct {
	err error
}

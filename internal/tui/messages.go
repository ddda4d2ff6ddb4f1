package tui

import "github.com/dookkeobi/leakpot/internal/model"

// budgetsLoadedMsg carries the result of a monthly budget fetch.
type budgetsLoadedMsg struct {
	err        error
	categories []model.Category
	period     model.Period
}

// yearLoadedMsg carries the result of the yearly leak summary fetch.
type yearLoadedMsg struct {
	err       error
	summaries []model.MonthSummary
}

// commitResultMsg reports an explicit save triggered by the user.
type commitResultMsg struct {
	err error
	id  int64
}

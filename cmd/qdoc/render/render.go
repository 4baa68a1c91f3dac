package render

import "time"

type Renderer interface {
	RenderCheckReport(view CheckReportView) string
	RenderCorpusList(view CorpusListView) string
}

type CheckReportView struct {
	Property string
	Trials   int
	Seed     uint64
	Examples []string
	Total    int
}

func (v CheckReportView) Passed() bool {
	return v.Total == 0
}

type CorpusListView struct {
	Items []CorpusItem
}

type CorpusItem struct {
	Repr       string
	Reductions int
	Panicked   bool
	RecordedAt time.Time
}

func (v CorpusListView) IsEmpty() bool {
	return len(v.Items) == 0
}

package report

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId  int
	reports map[string]Report
}

func NewStubReportRepo() *RepositoryStub {
	return &RepositoryStub{reports: map[string]Report{}}
}

func (s *RepositoryStub) Store(ctx context.Context, report Report) (Report, error) {
	s.nextId++
	report.Id = s.nextId
	s.reports[report.Uid] = report
	return report, nil
}

func (s *RepositoryStub) Get(ctx context.Context, uid string) (Report, error) {
	if report, exists := s.reports[uid]; exists {
		return report, nil
	}
	return Report{}, ErrReportNotFound
}

func (s *RepositoryStub) List(ctx context.Context) ([]Report, error) {
	reports := make([]Report, 0, len(s.reports))
	for _, report := range s.reports {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Year != reports[j].Year {
			return reports[i].Year > reports[j].Year
		}
		return reports[i].Month > reports[j].Month
	})
	return reports, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, uid string) (bool, error) {
	if _, exists := s.reports[uid]; exists {
		delete(s.reports, uid)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) Reset() {
	s.reports = map[string]Report{}
	s.nextId = 0
}

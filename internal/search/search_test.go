package search_test

import (
	"context"
	"errors"
	"testing"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/search"
	"jobmate/jobboard-service/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(store.NewMemoryBackend())
	if _, err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func seedJobs(t *testing.T, s *store.Store, jobs ...model.Job) []model.Job {
	t.Helper()
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		added, err := s.Jobs.Add(context.Background(), j)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, added)
	}
	return out
}

func titles(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var fixture = []model.Job{
	{
		Title: "Senior Frontend Developer", Description: "Build rich web UIs.",
		Location: "San Francisco, CA", Salary: "$120,000 - $150,000",
		ExperienceLevel: "Senior", JobType: "Full-time", Industry: "Technology",
		Skills: []string{"JavaScript", "React", "CSS"}, Remote: true,
	},
	{
		Title: "Backend Engineer", Description: "APIs and data pipelines.",
		Location: "New York, NY", Salary: "$100,000 - $130,000",
		ExperienceLevel: "Mid", JobType: "Full-time", Industry: "Finance",
		Skills: []string{"Python", "PostgreSQL"}, Remote: false,
	},
	{
		Title: "UX Designer", Description: "Own the design system.",
		Location: "Austin, TX", Salary: "$90,000 - $110,000",
		ExperienceLevel: "Mid", JobType: "Contract", Industry: "Technology",
		Skills: []string{"Figma", "User Research"}, Remote: true,
	},
}

func TestSearchJobs_MinSalary(t *testing.T) {
	s := newStore(t)
	seedJobs(t, s, fixture...)

	got, err := search.NewService(s).SearchJobs(context.Background(), "", model.Criteria{MinSalary: 100000})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	want := []string{"Senior Frontend Developer", "Backend Engineer"}
	if !equal(titles(got), want) {
		t.Errorf("titles = %v, want %v", titles(got), want)
	}
}

func TestSearchJobs_UnparseableSalaryIsKept(t *testing.T) {
	s := newStore(t)
	seedJobs(t, s, model.Job{Title: "Mystery", Salary: "Competitive"}, model.Job{Title: "Low", Salary: "$40,000"})

	got, _ := search.NewService(s).SearchJobs(context.Background(), "", model.Criteria{MinSalary: 50000})
	if !equal(titles(got), []string{"Mystery"}) {
		t.Errorf("titles = %v, want [Mystery]", titles(got))
	}
}

func TestSearchJobs_Filters(t *testing.T) {
	s := newStore(t)
	seedJobs(t, s, fixture...)
	svc := search.NewService(s)
	yes, no := true, false

	cases := []struct {
		name  string
		query string
		c     model.Criteria
		want  []string
	}{
		{"no criteria", "", model.Criteria{}, []string{"Senior Frontend Developer", "Backend Engineer", "UX Designer"}},
		{"query in title", "designer", model.Criteria{}, []string{"UX Designer"}},
		{"query in description", "PIPELINES", model.Criteria{}, []string{"Backend Engineer"}},
		{"query via synonym", "js", model.Criteria{}, []string{"Senior Frontend Developer"}},
		{"query via skill substring", "postgres", model.Criteria{}, []string{"Backend Engineer"}},
		{"location substring", "", model.Criteria{Location: "new york"}, []string{"Backend Engineer"}},
		{"job type exact", "", model.Criteria{JobType: "Contract"}, []string{"UX Designer"}},
		{"job type is case-sensitive", "", model.Criteria{JobType: "contract"}, []string{}},
		{"experience level", "", model.Criteria{ExperienceLevel: "Mid"}, []string{"Backend Engineer", "UX Designer"}},
		{"industry", "", model.Criteria{Industry: "Technology"}, []string{"Senior Frontend Developer", "UX Designer"}},
		{"remote true", "", model.Criteria{Remote: &yes}, []string{"Senior Frontend Developer", "UX Designer"}},
		{"remote false", "", model.Criteria{Remote: &no}, []string{"Backend Engineer"}},
		{"skills any", "", model.Criteria{Skills: []string{"py", "figma"}}, []string{"Backend Engineer", "UX Designer"}},
		{"skills none", "", model.Criteria{Skills: []string{"rust"}}, []string{}},
		{"exclude", "", model.Criteria{Exclude: []string{"FINANCE"}}, []string{"Senior Frontend Developer", "UX Designer"}},
		{"combined", "react", model.Criteria{Industry: "Technology", Remote: &yes, MinSalary: 100000}, []string{"Senior Frontend Developer"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := svc.SearchJobs(context.Background(), c.query, c.c)
			if err != nil {
				t.Fatalf("SearchJobs: %v", err)
			}
			if got == nil {
				t.Fatal("SearchJobs returned nil slice")
			}
			if !equal(titles(got), c.want) {
				t.Errorf("titles = %v, want %v", titles(got), c.want)
			}
		})
	}
}

func TestContainsExcludedTerm(t *testing.T) {
	job := model.Job{Title: "Sales Associate", Industry: "Retail", Description: "Commission only, unpaid trial."}
	cases := []struct {
		terms []string
		want  bool
	}{
		{nil, false},
		{[]string{""}, false},
		{[]string{"UNPAID"}, true},
		{[]string{"retail"}, true},
		{[]string{"remote", "crypto"}, false},
	}
	for _, c := range cases {
		if got := search.ContainsExcludedTerm(job, c.terms); got != c.want {
			t.Errorf("ContainsExcludedTerm(%q) = %v, want %v", c.terms, got, c.want)
		}
	}
}

func TestSavedSearches(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedJobs(t, s, fixture...)
	svc := search.NewService(s)
	alice := model.NewSession(model.User{Meta: model.Meta{ID: "alice"}, Type: model.UserJobSeeker})
	bob := model.NewSession(model.User{Meta: model.Meta{ID: "bob"}, Type: model.UserJobSeeker})

	if _, err := svc.SaveSearch(ctx, nil, model.Criteria{}); !errors.Is(err, apperr.ErrNotAuthenticated) {
		t.Errorf("SaveSearch logged out = %v, want NotAuthenticated", err)
	}

	skills := []string{"python"}
	saved, err := svc.SaveSearch(ctx, alice, model.Criteria{Skills: skills})
	if err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	skills[0] = "mutated"
	svc.SaveSearch(ctx, bob, model.Criteria{Query: "designer"})

	mine, _ := svc.GetSavedSearches(ctx, alice)
	if len(mine) != 1 || mine[0].Criteria.Skills[0] != "python" {
		t.Errorf("GetSavedSearches(alice) = %+v", mine)
	}
	if _, err := svc.GetSavedSearches(ctx, nil); !errors.Is(err, apperr.ErrNotAuthenticated) {
		t.Errorf("logged-out GetSavedSearches = %v, want NotAuthenticated", err)
	}

	jobs, err := svc.RunSavedSearch(ctx, alice, saved.ID)
	if err != nil {
		t.Fatalf("RunSavedSearch: %v", err)
	}
	if !equal(titles(jobs), []string{"Backend Engineer"}) {
		t.Errorf("RunSavedSearch = %v", titles(jobs))
	}

	if err := svc.DeleteSavedSearch(ctx, bob, saved.ID); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("DeleteSavedSearch by non-owner = %v, want Unauthorized", err)
	}
	if err := svc.DeleteSavedSearch(ctx, alice, saved.ID); err != nil {
		t.Fatalf("DeleteSavedSearch: %v", err)
	}
	if err := svc.DeleteSavedSearch(ctx, alice, saved.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second DeleteSavedSearch = %v, want NotFound", err)
	}
}

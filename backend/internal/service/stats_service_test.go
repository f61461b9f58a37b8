package service

import (
	"context"
	"errors"
	"testing"

	pkgerrors "pathfinder/backend/pkg/errors"
)

func TestStatsService_Summary(t *testing.T) {
	repo, mocks := newMockRepos()
	svc := NewStatsService(repo, testLogger)

	stats, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if stats.TotalCourses != int64(len(mocks.cat.courses)) {
		t.Errorf("期望课程数=%d，实际=%d", len(mocks.cat.courses), stats.TotalCourses)
	}

	mocks.stats.err = errors.New("down")
	if _, err := svc.Summary(context.Background()); !errors.Is(err, pkgerrors.ErrStoreUnavailable) {
		t.Errorf("期望 ErrStoreUnavailable，实际: %v", err)
	}
}

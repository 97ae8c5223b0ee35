package services

import (
	"log"

	"github.com/google/uuid"

	"cardmock-backend/internal/models"
	"cardmock-backend/internal/supabase"
)

// ReviewService answers "what is waiting on me" for a reviewer.
type ReviewService struct {
	dbClient *supabase.DatabaseClient
}

func NewReviewService(dbClient *supabase.DatabaseClient) *ReviewService {
	return &ReviewService{
		dbClient: dbClient,
	}
}

// PendingForUser finds every mockup, across every project of the org, where
// the user is a registered reviewer of a stage currently in review. This is
// dashboard data: a failure while resolving one project is logged and that
// project is skipped, so the caller gets partial results instead of an error.
func (s *ReviewService) PendingForUser(orgID, userID string) ([]models.PendingReview, error) {
	assignments, err := s.dbClient.ListAssignmentsForUser(orgID, userID)
	if err != nil {
		return nil, err
	}

	stagesByProject := make(map[uuid.UUID][]int)
	for _, a := range assignments {
		stagesByProject[a.ProjectID] = append(stagesByProject[a.ProjectID], a.StageOrder)
	}

	var pending []models.PendingReview
	for projectID, stageOrders := range stagesByProject {
		reviews, err := s.pendingForProject(orgID, projectID, stageOrders)
		if err != nil {
			log.Printf("Skipping project %s in pending reviews: %v", projectID, err)
			continue
		}
		pending = append(pending, reviews...)
	}

	return pending, nil
}

func (s *ReviewService) pendingForProject(orgID string, projectID uuid.UUID, stageOrders []int) ([]models.PendingReview, error) {
	project, err := s.dbClient.GetProject(projectID, orgID)
	if err != nil {
		return nil, err
	}
	wf, err := s.dbClient.GetProjectWorkflow(projectID, orgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.dbClient.ListInReviewForProject(projectID, stageOrders)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	mockupIDs := make([]uuid.UUID, 0, len(rows))
	stageByMockup := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		mockupIDs = append(mockupIDs, row.MockupID)
		stageByMockup[row.MockupID] = row.StageOrder
	}

	mockups, err := s.dbClient.ListMockupsByIDs(orgID, mockupIDs)
	if err != nil {
		return nil, err
	}

	reviews := make([]models.PendingReview, 0, len(mockups))
	for _, mockup := range mockups {
		stageOrder := stageByMockup[mockup.ID]
		review := models.PendingReview{
			Mockup:      mockup,
			ProjectID:   projectID,
			ProjectName: project.Name,
			StageOrder:  stageOrder,
		}
		if stage, ok := wf.Stages.ByOrder(stageOrder); ok {
			review.StageName = stage.Name
			review.StageColor = stage.Color
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

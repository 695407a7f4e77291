package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/models"
	"gorm.io/gorm"
)

// Seed fills an empty database with a small demo data set: two regular
// users, one manager, three projects, three tasks, a comment and a history
// entry. It does nothing when any user already exists.
func Seed(ctx context.Context, db *gorm.DB, log *logrus.Logger) error {
	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		log.Info("Database already seeded, skipping")
		return nil
	}

	now := time.Now().UTC()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		alice := &models.User{Name: "Alice Martins", Email: "alice.martins@example.com", Role: models.UserRoleUser}
		manager := &models.User{Name: "Maria Santos", Email: "maria.santos@example.com", Role: models.UserRoleManager}
		carlos := &models.User{Name: "Carlos Oliveira", Email: "carlos.oliveira@example.com", Role: models.UserRoleUser}
		for _, u := range []*models.User{alice, manager, carlos} {
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}

		website := &models.Project{Name: "Website Redesign", Description: "Full redesign of the company website", UserID: alice.ID}
		mobile := &models.Project{Name: "Mobile App", Description: "Build the mobile application", UserID: alice.ID}
		integration := &models.Project{Name: "API Integration", Description: "Integrate third-party APIs", UserID: carlos.ID}
		for _, p := range []*models.Project{website, mobile, integration} {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to seed project %s: %w", p.Name, err)
			}
		}

		wireframes := &models.ProjectTask{
			Title:       "Create wireframes",
			Description: "Wireframe the main pages",
			DueDate:     now.AddDate(0, 0, 7),
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityHigh,
			ProjectID:   website.ID,
		}
		palette := &models.ProjectTask{
			Title:       "Pick color palette",
			Description: "Choose the colors of the new design",
			DueDate:     now.AddDate(0, 0, 5),
			Status:      models.TaskStatusCompleted,
			Priority:    models.TaskPriorityMedium,
			ProjectID:   website.ID,
		}
		palette.Touch(now)
		login := &models.ProjectTask{
			Title:       "Implement login screen",
			Description: "Build the login screen UI and logic",
			DueDate:     now.AddDate(0, 0, 10),
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityHigh,
			ProjectID:   mobile.ID,
		}
		for _, t := range []*models.ProjectTask{wireframes, palette, login} {
			if err := tx.Create(t).Error; err != nil {
				return fmt.Errorf("failed to seed task %s: %w", t.Title, err)
			}
		}

		comment := &models.TaskComment{
			TaskID:  wireframes.ID,
			UserID:  manager.ID,
			Content: "Great progress, keep going.",
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to seed comment: %w", err)
		}

		previous, next := string(models.TaskStatusInProgress), string(models.TaskStatusCompleted)
		history := &models.TaskHistory{
			TaskID:            palette.ID,
			UserID:            alice.ID,
			ChangeDescription: "Status updated",
			PreviousValue:     &previous,
			NewValue:          &next,
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to seed history: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Database seeded with demo data")
	return nil
}

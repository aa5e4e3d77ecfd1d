package postgres

import (
	"context"

	"evently/internal/domain/entity"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/domain/repository"
	"evently/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

// Create inserts the event. A created_by that references no user surfaces as
// ErrEventCreatorNotFound, which happens when a token outlives its user.
func (repo *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	eventM := fromEventDomain(event)

	if err := repo.db.WithContext(ctx).Omit("Creator").Create(eventM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrEventCreatorNotFound.WrapMessage("event creator does not exist")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewValidationError("capacity", "capacity must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create event")
	}

	event.ID = eventM.ID
	event.TicketsSold = eventM.TicketsSold
	event.CreatedAt = eventM.CreatedAt
	event.UpdatedAt = eventM.UpdatedAt

	return nil
}

// List returns every event with its creator's id and name. Served by a replica when configured.
func (repo *eventRepository) List(ctx context.Context) ([]*entity.Event, error) {
	var eventMs []*model.EventModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Read).
		Preload("Creator", selectCreatorColumns).
		Order("date ASC").
		Order("created_at ASC").
		Find(&eventMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list events")
	}

	events := make([]*entity.Event, 0, len(eventMs))
	for _, eventM := range eventMs {
		events = append(events, toEventDomain(eventM))
	}

	return events, nil
}

// FindByID returns one event with its creator populated.
func (repo *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var eventM model.EventModel
	err := repo.db.WithContext(ctx).
		Preload("Creator", selectCreatorColumns).
		Where("id = ?", id).
		First(&eventM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find event by id")
	}

	return toEventDomain(&eventM), nil
}

// selectCreatorColumns keeps password hashes out of preloaded creators.
func selectCreatorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

// --- Mapper Functions ---

func toEventDomain(data *model.EventModel) *entity.Event {
	if data == nil {
		return nil
	}

	event := &entity.Event{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Date:        data.Date,
		Location:    data.Location,
		Capacity:    data.Capacity,
		TicketsSold: data.TicketsSold,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}

	if data.Creator != nil {
		event.Creator = &entity.EventCreator{
			ID:   data.Creator.ID,
			Name: data.Creator.Name,
		}
	}

	if data.Latitude != nil && data.Longitude != nil {
		event.Coordinates = &entity.Coordinates{
			Latitude:  *data.Latitude,
			Longitude: *data.Longitude,
		}
	}

	return event
}

func fromEventDomain(data *entity.Event) *model.EventModel {
	if data == nil {
		return nil
	}

	eventM := &model.EventModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Date:        data.Date,
		Location:    data.Location,
		Capacity:    data.Capacity,
		TicketsSold: data.TicketsSold,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}

	if data.Coordinates != nil {
		lat, lng := data.Coordinates.Latitude, data.Coordinates.Longitude
		eventM.Latitude = &lat
		eventM.Longitude = &lng
	}

	return eventM
}

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/repos"
	"github.com/agrisight/agrisight-backend/internal/sse"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type SensorPayload struct {
	Ph          float64 `json:"ph" binding:"required"`
	Ec          float64 `json:"ec" binding:"required"`
	Moisture    float64 `json:"moisture" binding:"required"`
	Temperature float64 `json:"temperature" binding:"required"`
}

type SensorService interface {
	Record(ctx context.Context, userID uuid.UUID, payload SensorPayload) (*types.SensorReading, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.SensorReading, error)
}

type sensorService struct {
	log        *logger.Logger
	sensorRepo repos.SensorReadingRepo
	hub        *sse.SSEHub
}

func NewSensorService(log *logger.Logger, sensorRepo repos.SensorReadingRepo, hub *sse.SSEHub) SensorService {
	return &sensorService{
		log:        log.With("service", "SensorService"),
		sensorRepo: sensorRepo,
		hub:        hub,
	}
}

func (ss *sensorService) Record(ctx context.Context, userID uuid.UUID, payload SensorPayload) (*types.SensorReading, error) {
	reading := &types.SensorReading{
		ID:          uuid.New(),
		UserID:      userID,
		Ph:          payload.Ph,
		Ec:          payload.Ec,
		Moisture:    payload.Moisture,
		Temperature: payload.Temperature,
	}
	stored, err := ss.sensorRepo.Create(ctx, nil, reading)
	if err != nil {
		return nil, err
	}

	// Live broadcast is fire-and-forget; it must never fail the write path.
	if ss.hub != nil {
		ss.hub.Broadcast(sse.SSEMessage{
			Channel: sse.UserSensorChannel(userID),
			Event:   sse.SSEEventSensorUpdate,
			Data:    stored,
		})
		ss.hub.Broadcast(sse.SSEMessage{
			Channel: sse.SensorPublicChannel,
			Event:   sse.SSEEventSensorPublic,
			Data:    stored,
		})
	}

	return stored, nil
}

func (ss *sensorService) History(ctx context.Context, userID uuid.UUID) ([]*types.SensorReading, error) {
	return ss.sensorRepo.ListByUserID(ctx, nil, userID, 50)
}

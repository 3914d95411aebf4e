package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
)

type CreateRequestInput struct {
	BarberID      uint
	CustomerName  string
	CustomerPhone string
	Date          string
	StartTime     string
	EndTime       string // optional
	Notes         string
}

type CreateRequest struct {
	repo domain.Repository
	now  func() time.Time
}

func NewCreateRequest(repo domain.Repository) *CreateRequest {
	return &CreateRequest{
		repo: repo,
		now:  timezone.Now,
	}
}

// Execute records a customer's ask as a pending request. The interval
// is not reserved until staff approves it.
func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.AppointmentRequest, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if barber == nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	day, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	startMin, err := timegrid.ToMinutes(in.StartTime)
	if err != nil {
		return nil, err
	}
	if in.EndTime != "" {
		endMin, err := timegrid.ToMinutes(in.EndTime)
		if err != nil {
			return nil, err
		}
		if endMin <= startMin {
			return nil, httperr.ErrBusiness("end_before_start")
		}
	}

	startAt := day.Add(time.Duration(startMin) * time.Minute)
	if startAt.Before(uc.now()) {
		return nil, httperr.ErrBusiness("time_in_past")
	}

	req := &models.AppointmentRequest{
		BarberID:           in.BarberID,
		CustomerName:       in.CustomerName,
		CustomerPhone:      in.CustomerPhone,
		Date:               in.Date,
		RequestedStartTime: in.StartTime,
		RequestedEndTime:   in.EndTime,
		Status:             string(domain.InitialStatus()),
		Reference:          uuid.NewString(),
		Notes:              in.Notes,
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

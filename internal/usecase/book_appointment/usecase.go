package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	parametersRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/parameters"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const (
	subjectClient = "Confirmación de cita BBVA"
	subjectBank   = "Nueva cita agendada"

	defaultDispatchTimeout = 10 * time.Second
)

// UseCase use case для записи заявителя в агентство
type UseCase struct {
	appointmentRepo AppointmentRepository
	parametersRepo  ParametersRepository
	agencyRepo      AgencyRepository
	txManager       TransactionManager
	dispatcher      NotificationDispatcher
	pdfBuilder      PdfBuilder
	outcomes        OutcomeObserver
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger

	pending sync.WaitGroup
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	parametersRepo ParametersRepository,
	agencyRepo AgencyRepository,
	txManager TransactionManager,
	dispatcher NotificationDispatcher,
	pdfBuilder PdfBuilder,
	outcomes OutcomeObserver,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.DispatchTimeout <= 0 {
		settings.DispatchTimeout = defaultDispatchTimeout
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		parametersRepo:  parametersRepo,
		agencyRepo:      agencyRepo,
		txManager:       txManager,
		dispatcher:      dispatcher,
		pdfBuilder:      pdfBuilder,
		outcomes:        outcomes,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет запись. Проверки идут в фиксированном порядке, первая нарушенная
// определяет отказ. Чтение журнала и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.outcomes != nil {
		uc.outcomes.ObserveBooking(Outcome(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: requester=%s, kind=%s, agency=%s, date=%s, hour=%s",
		req.RequesterID, req.ApplicantKind, req.AgencyID, req.Date.Format(domain.DateFormat), req.Hour)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result *domain.Appointment
		agency *domain.Agency
	)

	// 3. Все проверки и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. У заявителя не должно быть записи в статусе booked
		booked, err := uc.appointmentRepo.GetByFilter(txCtx, domain.AppointmentsFilter{
			RequesterID: ptr.Ptr(req.RequesterID),
			Status:      ptr.Ptr(domain.StatusBooked),
		})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get requester appointments: %v", err)
			return fmt.Errorf("%w: failed to get requester appointments: %w", ErrInternal, err)
		}
		if len(booked) > 0 {
			uc.logger.Warn("BookAppointment: requester=%s already has appointment id=%s", req.RequesterID, booked[0].ID)
			return ErrAlreadyBooked
		}

		// 3.2. Дата должна быть рабочим днем
		if err := validateDate(req.Date, now, uc.settings.EnforceWindow); err != nil {
			uc.logger.Warn("BookAppointment: date validation failed: %v", err)
			return err
		}

		// 3.3. У агентства должна быть параметризация
		params, err := uc.parametersRepo.GetByAgencyID(txCtx, req.AgencyID)
		if err != nil {
			if errors.Is(err, parametersRepo.ErrParametersNotFound) {
				uc.logger.Warn("BookAppointment: agency=%s has no parameters", req.AgencyID)
				return ErrAgencyNotBookable
			}
			uc.logger.Error("BookAppointment: failed to get parameters: %v", err)
			return fmt.Errorf("%w: failed to get parameters: %w", ErrInternal, err)
		}

		agency, err = uc.agencyRepo.GetByID(txCtx, req.AgencyID)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get agency=%s: %v", req.AgencyID, err)
			return fmt.Errorf("%w: failed to get agency: %w", ErrInternal, err)
		}

		// 3.4. Активные записи агентства на дату (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByFilter(txCtx, domain.AppointmentsFilter{
			AgencyID:   ptr.Ptr(req.AgencyID),
			DateFrom:   &req.Date,
			DateTo:     &req.Date,
			ActiveOnly: true,
		})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if !availability.HasCapacity(params, appointments) {
			uc.logger.Warn("BookAppointment: agency=%s fully booked on %s, %d/%d",
				req.AgencyID, req.Date.Format(domain.DateFormat), availability.CountActive(appointments), params.MaxAppointmentsPerDay)
			return ErrAgencyFullyBooked
		}

		// 3.5. Час должен быть в расписании и свободен
		if !availability.IsHourFree(params, appointments, req.Hour) {
			uc.logger.Warn("BookAppointment: hour %s is not free at agency=%s on %s",
				req.Hour, req.AgencyID, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		uc.logger.Info("BookAppointment: slot available, %d/%d taken",
			availability.CountActive(appointments), params.MaxAppointmentsPerDay)

		// 3.6. Создаем запись
		appointment := &domain.Appointment{
			ID:                uuid.NewString(),
			RequesterID:       req.RequesterID,
			ApplicantKind:     req.ApplicantKind,
			Date:              req.Date,
			Hour:              req.Hour,
			AgencyID:          req.AgencyID,
			ContactEmail:      req.ContactEmail,
			NotificationEmail: recipientFor(req.ApplicantKind, uc.settings),
			Status:            domain.StatusBooked,
			CreatedAt:         now,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotOccupied):
				uc.logger.Warn("BookAppointment: slot occupied by concurrent booking")
				return ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrRequesterHasBooked):
				uc.logger.Warn("BookAppointment: requester=%s booked concurrently", req.RequesterID)
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт не разрешился за отведенные попытки: слот забрал параллельный запрос
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("BookAppointment: serialization conflict for agency=%s, date=%s, hour=%s",
				req.AgencyID, req.Date.Format(domain.DateFormat), req.Hour)
			return nil, ErrSlotTaken
		}
		if !isRejection(err) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("BookAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%s", result.ID)

	// 4. Готовим ссылку на PDF и описание писем
	pdfURL := uc.pdfBuilder.BuildPdfURL(result.ID)
	notifications := buildNotifications(result, agency, req.ClientName, pdfURL)

	// 5. Отправка уведомлений не влияет на результат записи
	uc.dispatchAsync(result, notifications)

	return &Response{
		Appointment:   result,
		PdfURL:        pdfURL,
		Notifications: notifications,
	}, nil
}

// Wait дожидается отправки уведомлений, запущенных до вызова
func (uc *UseCase) Wait() {
	uc.pending.Wait()
}

func (uc *UseCase) dispatchAsync(appointment *domain.Appointment, notifications []domain.Notification) {
	if uc.dispatcher == nil {
		return
	}

	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), uc.settings.DispatchTimeout)
		defer cancel()

		if err := uc.dispatcher.Dispatch(ctx, appointment, notifications); err != nil {
			uc.logger.Error("BookAppointment: failed to dispatch notifications for appointment id=%s: %v",
				appointment.ID, err)
			return
		}
		uc.logger.Info("BookAppointment: notifications dispatched for appointment id=%s", appointment.ID)
	}()
}

func buildNotifications(a *domain.Appointment, agency *domain.Agency, clientName, pdfURL string) []domain.Notification {
	if clientName == "" {
		clientName = a.ContactEmail
	}

	base := domain.Notification{
		AppointmentID: a.ID,
		ClientName:    clientName,
		ClientEmail:   a.ContactEmail,
		Date:          a.Date.Format(domain.DateFormat),
		Hour:          a.Hour,
		AgencyName:    agency.Name,
		AgencyAddress: agency.Address,
		PdfURL:        pdfURL,
	}

	client := base
	client.Kind = domain.NotificationClient
	client.Recipient = a.ContactEmail
	client.Subject = subjectClient

	bank := base
	bank.Kind = domain.NotificationBank
	bank.Recipient = a.NotificationEmail
	bank.Subject = subjectBank

	return []domain.Notification{client, bank}
}

func isRejection(err error) bool {
	return errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrAgencyNotBookable) ||
		errors.Is(err, ErrAgencyFullyBooked) ||
		errors.Is(err, ErrSlotTaken)
}

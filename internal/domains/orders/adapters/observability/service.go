package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
)

const tracerName = "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, actor ordersports.Actor, input ordersports.CreateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.service_id", input.ServiceID.String()),
			attribute.Int("order.selections", len(input.Selection)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("service.id", input.ServiceID.String()), slog.String("actor.id", actor.ID.String()))
	result, err := s.inner.CreateOrder(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("service.id", input.ServiceID.String()))
	}
	s.metrics.recordCreated(ctx, result.Method)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID.String()), slog.Float64("order.grand_total", result.Pricing.GrandTotal))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, actor ordersports.Actor, id uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, actor ordersports.Actor, input ordersports.ListOrdersInput) (*ordersports.OrderPage, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int64("orders.total", result.Pagination.Total))
	return result, nil
}

func (s *Service) SetStatus(ctx context.Context, actor ordersports.Actor, id uuid.UUID, status string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SetStatus",
		trace.WithAttributes(attribute.String("order.id", id.String()), attribute.String("order.status", status)))
	defer span.End()

	s.logInfo(ctx, "setting order status", slog.String("order.id", id.String()), slog.String("status", status))
	result, err := s.inner.SetStatus(ctx, actor, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set order status", slog.String("order.id", id.String()))
	}
	s.metrics.recordTransition(ctx, result.Fulfillment)
	return result, nil
}

func (s *Service) Cancel(ctx context.Context, actor ordersports.Actor, id uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Cancel", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order.id", id.String()))
	result, err := s.inner.Cancel(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id.String()))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.String("order.id", result.ID.String()))
	return result, nil
}

func (s *Service) UpdatePayment(ctx context.Context, actor ordersports.Actor, id uuid.UUID, input ordersports.PaymentUpdateInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdatePayment",
		trace.WithAttributes(attribute.String("order.id", id.String()), attribute.String("payment.status", input.Status)))
	defer span.End()

	s.logInfo(ctx, "updating order payment", slog.String("order.id", id.String()), slog.String("payment.status", input.Status))
	result, err := s.inner.UpdatePayment(ctx, actor, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order payment", slog.String("order.id", id.String()))
	}
	s.metrics.recordPayment(ctx, result.Payment)
	return result, nil
}

func (s *Service) ApplyGatewayCallback(ctx context.Context, actor ordersports.Actor, id uuid.UUID, callback ordersdomain.GatewayCallback) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ApplyGatewayCallback",
		trace.WithAttributes(
			attribute.String("order.id", id.String()),
			attribute.String("gateway.order_id", callback.GatewayOrderID),
			attribute.String("gateway.capture_status", callback.CaptureStatus),
		))
	defer span.End()

	s.logInfo(ctx, "applying gateway callback",
		slog.String("order.id", id.String()),
		slog.String("gateway.order_id", callback.GatewayOrderID),
		slog.String("gateway.capture_id", callback.CaptureID))
	result, err := s.inner.ApplyGatewayCallback(ctx, actor, id, callback)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to apply gateway callback", slog.String("order.id", id.String()))
	}
	s.metrics.recordPayment(ctx, result.Payment)
	s.logInfo(ctx, "gateway callback applied",
		slog.String("order.id", result.ID.String()),
		slog.String("payment.status", string(result.Payment)),
		slog.String("fulfillment.status", string(result.Fulfillment)))
	return result, nil
}

func (s *Service) DeleteOrder(ctx context.Context, actor ordersports.Actor, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteOrder", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id.String()))
	if err := s.inner.DeleteOrder(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id.String()))
	}
	s.logInfo(ctx, "order deleted", slog.String("order.id", id.String()))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated      metric.Int64Counter
	ordersCancelled    metric.Int64Counter
	statusTransitions  metric.Int64Counter
	paymentTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	transitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of explicit fulfillment transitions"))
	payments, _ := m.Int64Counter("orders.service.payment_transitions", metric.WithDescription("Number of payment-status transitions"))
	return serviceMetrics{
		ordersCreated:      created,
		ordersCancelled:    cancelled,
		statusTransitions:  transitions,
		paymentTransitions: payments,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, method ordersdomain.PaymentMethod) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_method", string(method))))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.ordersCancelled != nil {
		m.ordersCancelled.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.FulfillmentStatus) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.fulfillment_status", string(status))))
	}
}

func (m serviceMetrics) recordPayment(ctx context.Context, status ordersdomain.PaymentStatus) {
	if m.paymentTransitions != nil {
		m.paymentTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)

package service

import (
	"context"
	"fmt"
	"strconv"

	"services/notification-service/internal/config"
	"services/notification-service/internal/model"
)

// budgetTitles and budgetMessages key the budget notification text by
// action sub-kind. Unknown actions fall back to a generic update text.
var budgetTitles = map[string]string{
	model.BudgetActionRequested: "Nova solicitação de orçamento",
	model.BudgetActionReplied:   "Orçamento enviado",
	model.BudgetActionAccepted:  "Orçamento aceito",
	model.BudgetActionDeclined:  "Orçamento recusado",
	model.BudgetActionMessage:   "Nova mensagem no orçamento",
}

var budgetMessages = map[string]string{
	model.BudgetActionRequested: "%s solicitou um orçamento para %q",
	model.BudgetActionReplied:   "%s enviou um orçamento para %q",
	model.BudgetActionAccepted:  "%s aceitou seu orçamento para %q",
	model.BudgetActionDeclined:  "%s recusou seu orçamento para %q",
	model.BudgetActionMessage:   "%s enviou uma mensagem sobre o orçamento de %q",
}

// NotificationFactory translates domain events into notifications. Callers
// are trusted in-process modules; the factory performs no validation of
// the domain objects beyond what Create enforces on the resulting fields.
type NotificationFactory struct {
	notificationService *NotificationService
	links               config.LinksConfig
}

// NewNotificationFactory creates a new notification factory
func NewNotificationFactory(notificationService *NotificationService, links config.LinksConfig) *NotificationFactory {
	return &NotificationFactory{
		notificationService: notificationService,
		links:               links,
	}
}

// ChatMessage notifies the recipient that sender wrote them a chat message
func (f *NotificationFactory) ChatMessage(ctx context.Context, recipient, sender model.UserRef, link string) (*model.Notification, error) {
	if link == "" {
		link = fmt.Sprintf(f.links.Chat, sender.Username)
	}

	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            recipient.ID,
		Kind:              model.KindChat,
		Title:             "Nova mensagem",
		Message:           fmt.Sprintf("%s enviou uma mensagem", sender.DisplayName()),
		Link:              link,
		RelatedObjectID:   strconv.Itoa(sender.ID),
		RelatedObjectType: "user",
	})
}

// EventQuestion notifies the event organizer that a question was asked
func (f *NotificationFactory) EventQuestion(ctx context.Context, organizer, asker model.UserRef, event model.EventRef, questionID int) (*model.Notification, error) {
	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            organizer.ID,
		Kind:              model.KindQuestion,
		Title:             "Nova pergunta em evento",
		Message:           fmt.Sprintf("%s fez uma pergunta sobre o evento %q", asker.DisplayName(), event.Name),
		Link:              fmt.Sprintf(f.links.Event, event.ID),
		RelatedObjectID:   strconv.Itoa(questionID),
		RelatedObjectType: "pergunta",
	})
}

// QuestionAnswered notifies the asker that their question was answered
func (f *NotificationFactory) QuestionAnswered(ctx context.Context, asker, organizer model.UserRef, event model.EventRef, questionID int) (*model.Notification, error) {
	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            asker.ID,
		Kind:              model.KindAnswer,
		Title:             "Pergunta respondida",
		Message:           fmt.Sprintf("%s respondeu sua pergunta sobre o evento %q", organizer.DisplayName(), event.Name),
		Link:              fmt.Sprintf(f.links.Event, event.ID),
		RelatedObjectID:   strconv.Itoa(questionID),
		RelatedObjectType: "pergunta",
	})
}

// RatingReceived notifies a provider that their services were rated
func (f *NotificationFactory) RatingReceived(ctx context.Context, provider model.ProviderRef, reviewer model.UserRef) (*model.Notification, error) {
	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            provider.User.ID,
		Kind:              model.KindRating,
		Title:             "Nova avaliação",
		Message:           fmt.Sprintf("%s avaliou seus serviços", reviewer.DisplayName()),
		Link:              fmt.Sprintf(f.links.Provider, provider.ID),
		RelatedObjectID:   strconv.Itoa(provider.ID),
		RelatedObjectType: "fornecedor",
	})
}

// Appointment notifies a calendar owner that an appointment was added
func (f *NotificationFactory) Appointment(ctx context.Context, owner model.UserRef, title, link string) (*model.Notification, error) {
	if link == "" {
		link = f.links.Agenda
	}

	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            owner.ID,
		Kind:              model.KindAppointment,
		Title:             "Novo compromisso",
		Message:           fmt.Sprintf("Um novo compromisso foi adicionado: %s", title),
		Link:              link,
		RelatedObjectType: "compromisso",
	})
}

// BudgetAction notifies the counterparty of a budget request, response,
// acceptance, refusal or message
func (f *NotificationFactory) BudgetAction(ctx context.Context, recipient, actor model.UserRef, action, serviceName, link string) (*model.Notification, error) {
	if link == "" {
		link = f.links.BudgetRequests
	}

	title, ok := budgetTitles[action]
	if !ok {
		title = "Atualização de orçamento"
	}

	var message string
	if format, ok := budgetMessages[action]; ok {
		message = fmt.Sprintf(format, actor.DisplayName(), serviceName)
	} else {
		message = fmt.Sprintf("Atualização no orçamento de %q", serviceName)
	}

	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            recipient.ID,
		Kind:              model.KindBudget,
		Title:             title,
		Message:           message,
		Link:              link,
		RelatedObjectType: "orcamento",
	})
}

// Custom creates a notification with caller-provided fields
func (f *NotificationFactory) Custom(ctx context.Context, owner model.UserRef, kind, title, message, link, relatedObjectID, relatedObjectType string) (*model.Notification, error) {
	return f.notificationService.Create(ctx, &model.NotificationCreate{
		UserID:            owner.ID,
		Kind:              kind,
		Title:             title,
		Message:           message,
		Link:              link,
		RelatedObjectID:   relatedObjectID,
		RelatedObjectType: relatedObjectType,
	})
}

// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"agency-configurator-be/internal/dto"
	"agency-configurator-be/internal/entity"
	"agency-configurator-be/internal/pkg/mailer"
	"agency-configurator-be/internal/repository/specification"
	"agency-configurator-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	agencyInbox  string
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	agencyInbox string,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		agencyInbox:  agencyInbox,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LeadNotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal lead notification: %v", err)
		msg.Ack() // never retry a payload we cannot read
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: payload.LeadId})
	if err != nil {
		log.Printf("[ERROR] Failed to get lead %s: %v", payload.LeadId, err)
		msg.Nack()
		return
	}
	if lead == nil {
		log.Printf("[WARN] Lead not found: %s", payload.LeadId)
		msg.Ack()
		return
	}

	names, err := cs.optionNames(ctx, uow, lead)
	if err != nil {
		log.Printf("[ERROR] Failed to resolve option names for lead %s: %v", lead.Reference, err)
		msg.Nack()
		return
	}

	mail := mailer.LeadMail{
		Reference:   lead.Reference,
		Kind:        string(lead.Kind),
		FullName:    lead.FullName,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Company:     lead.Company,
		Message:     lead.Message,
		WebsiteUrl:  lead.WebsiteUrl,
		OptionNames: names,
		TotalMin:    lead.TotalMin,
		TotalMax:    lead.TotalMax,
		TotalMinTtc: lead.TotalMinTtc,
		TotalMaxTtc: lead.TotalMaxTtc,
		OnRequest:   len(lead.AutomationOptions),
	}

	if err := cs.emailService.SendLeadNotification(cs.agencyInbox, mail); err != nil {
		log.Printf("[ERROR] %v", err)
		msg.Nack()
		return
	}
	// The client copy is not retried, a second agency email would be worse.
	if err := cs.emailService.SendLeadAcknowledgement(mail); err != nil {
		log.Printf("[WARN] %v", err)
	}

	log.Printf("[SUCCESS] Lead notification sent for %s", lead.Reference)
	msg.Ack()
}

func (cs *consumerService) optionNames(ctx context.Context, uow unitofwork.UnitOfWork, lead *entity.Lead) ([]string, error) {
	if len(lead.SelectedOptions) == 0 {
		return []string{}, nil
	}
	options, err := uow.OptionRepository().FindAll(ctx, specification.ByKeys{Keys: lead.SelectedOptions})
	if err != nil {
		return nil, err
	}
	byId := make(map[string]string, len(options))
	for _, o := range options {
		byId[o.Id] = o.Name
	}
	names := make([]string, 0, len(lead.SelectedOptions))
	for _, id := range lead.SelectedOptions {
		if name, ok := byId[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return names, nil
}

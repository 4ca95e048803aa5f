package usecases

import (
	"context"

	"autocrm/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type ChangePriorityExecutor interface {
	Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error)
}

type ChangeCategoryExecutor interface {
	Execute(ctx context.Context, cmd ChangeCategoryCommand) (*ChangeCategoryResult, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error)
}

type AddMessageExecutor interface {
	Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error)
}

type AddAttachmentExecutor interface {
	Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error)
}

type GetAttachmentURLExecutor interface {
	Execute(ctx context.Context, query GetAttachmentURLQuery) (*GetAttachmentURLResult, error)
}

type DownloadAttachmentExecutor interface {
	Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error)
}

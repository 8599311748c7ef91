package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/commands"
	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/helpers"
	"gmeet-jira-bot/internal/keyboards"
	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/services"
	"gmeet-jira-bot/internal/workflow"
)

const authWaitTimeout = 5 * time.Minute

// handleGmeetAuth runs the OAuth consent flow: it sends the consent URL
// with a QR code and waits for the redirect in the background
func (h *MemberHandler) handleGmeetAuth(ctx context.Context, c telebot.Context) error {
	url := h.calendarService.AuthURL()

	if err := h.sendTextMessage(c, fmt.Sprintf("Open this link to authorize Google Calendar access:\n%s", url), nil); err != nil {
		return err
	}
	h.sendQRCode(c, url)

	chatID := c.Chat().ID
	recipient := c.Recipient()
	bot := c.Bot()

	go func() {
		waitCtx, cancel := context.WithTimeout(context.Background(), authWaitTimeout)
		defer cancel()

		code, err := h.authServer.WaitForCode(waitCtx)
		if err != nil {
			h.logger.Errorf("OAuth redirect wait failed for chat %d: %v", chatID, err)
			bot.Send(recipient, fmt.Sprintf("Error during authorization: %v", err))
			return
		}

		if err := h.calendarService.CompleteAuth(waitCtx, chatID, code); err != nil {
			h.logger.Errorf("Token exchange failed for chat %d: %v", chatID, err)
			bot.Send(recipient, fmt.Sprintf("Error during authorization: %v", err))
			return
		}

		bot.Send(recipient, "Authorization successful! Use "+commands.GmeetLink+" to create a Google Meet link.")
	}()

	return nil
}

// handleGmeetLink creates an instant meeting link
func (h *MemberHandler) handleGmeetLink(ctx context.Context, c telebot.Context) error {
	link, err := h.calendarService.QuickLink(ctx, c.Chat().ID)
	if err != nil {
		var notAuth *apperrors.NotAuthorizedError
		if errors.As(err, &notAuth) {
			return h.sendTextMessage(c, "You need to authorize first! Use "+commands.GmeetAuth+" to begin.", nil)
		}
		return h.sendTextMessage(c, fmt.Sprintf("Error creating Google Meet link: %v", err), nil)
	}
	return h.sendTextMessage(c, fmt.Sprintf("Google Meet link created: %s\nShare it with your participants!", link), nil)
}

// handleScheduleMeeting starts the meeting workflow
func (h *MemberHandler) handleScheduleMeeting(ctx context.Context, c telebot.Context) error {
	return h.startWorkflow(ctx, c, workflow.MeetingWorkflow, nil)
}

// handleAddGuest starts the guest registration workflow
func (h *MemberHandler) handleAddGuest(ctx context.Context, c telebot.Context) error {
	return h.startWorkflow(ctx, c, workflow.GuestWorkflow, nil)
}

// handleDeleteGuest shows the guest catalog for deletion
func (h *MemberHandler) handleDeleteGuest(ctx context.Context, c telebot.Context) error {
	guests, err := h.guestRepo.List(ctx)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch guests: %v", err), nil)
	}
	if len(guests) == 0 {
		return h.sendTextMessage(c, "No guests registered yet.", nil)
	}
	return h.sendTextMessage(c, "Select a guest to delete:", keyboards.DeleteGuests(guests))
}

// handleCreateIssue starts the task creation workflow
func (h *MemberHandler) handleCreateIssue(ctx context.Context, c telebot.Context) error {
	return h.startWorkflow(ctx, c, workflow.TaskWorkflow, nil)
}

// handleReportBug starts the bug workflow seeded from the replied-to
// message: its text or caption becomes the description and an attached
// photo or document becomes the first attachment
func (h *MemberHandler) handleReportBug(ctx context.Context, c telebot.Context) error {
	reply := c.Message().ReplyTo
	if reply == nil {
		return h.sendTextMessage(c, "Please reply to a message to use as the bug description.", nil)
	}

	description := reply.Text
	if description == "" {
		description = reply.Caption
	}
	if description == "" {
		description = "No description provided."
	}

	var attachments []string
	if path, err := h.downloadReplyMedia(c, reply); err != nil {
		h.logger.Errorf("Failed to download bug report media: %v", err)
	} else if path != "" {
		attachments = append(attachments, path)
	}

	return h.startWorkflow(ctx, c, workflow.BugWorkflow, func(conv *models.Conversation) {
		conv.Fields.Set(workflow.FieldDescription, description)
		conv.Attachments = attachments
	})
}

// startWorkflow starts a workflow for the chat and prompts its first step
func (h *MemberHandler) startWorkflow(ctx context.Context, c telebot.Context, workflowID string, seed func(*models.Conversation)) error {
	chatID := c.Chat().ID

	step, err := h.engine.StartSeeded(chatID, workflowID, seed)
	if err != nil {
		var active *apperrors.WorkflowActiveError
		if errors.As(err, &active) {
			return h.sendTextMessage(c, "Another workflow is already in progress. Finish it or send /cancel first.", nil)
		}
		var notAuth *apperrors.NotAuthorizedError
		if errors.As(err, &notAuth) {
			return h.sendTextMessage(c, "You need to authenticate first! Use "+commands.GmeetAuth+" to authorize.", nil)
		}
		return h.sendTextMessage(c, fmt.Sprintf("Failed to start: %v", err), nil)
	}

	return h.promptStep(ctx, c, step)
}

// handleWorkflowInput feeds free text into the active workflow
func (h *MemberHandler) handleWorkflowInput(ctx context.Context, c telebot.Context, input string) error {
	result, err := h.engine.Advance(c.Chat().ID, input)
	if err != nil {
		var invalid *apperrors.ValidationError
		if errors.As(err, &invalid) {
			return h.sendTextMessage(c, invalid.Message, nil)
		}
		return h.sendTextMessage(c, fmt.Sprintf("Something went wrong: %v", err), nil)
	}

	return h.handleResult(ctx, c, result)
}

// handleResult reacts to an engine outcome
func (h *MemberHandler) handleResult(ctx context.Context, c telebot.Context, result *workflow.Result) error {
	switch result.Status {
	case workflow.Cancelled:
		return h.sendTextMessage(c, "Cancelled.", nil)
	case workflow.Accumulating:
		return h.sendTextMessage(c, "Description updated. Send more details (text, photos, or files) or type /done when finished.", nil)
	case workflow.Advanced:
		return h.promptStep(ctx, c, result.Step)
	case workflow.Completed:
		return h.finishWorkflow(ctx, c)
	}
	return nil
}

// promptStep sends the step's prompt with its keyboard, resolving
// runtime option sets where the step needs them
func (h *MemberHandler) promptStep(ctx context.Context, c telebot.Context, step *workflow.Step) error {
	chatID := c.Chat().ID

	switch step.ID {
	case workflow.StepMeetingGuests:
		guests, err := h.guestRepo.List(ctx)
		if err != nil {
			return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch guests: %v", err), nil)
		}
		return h.sendTextMessage(c, step.Prompt, keyboards.SelectGuests(guests, nil))

	case workflow.StepTaskAssignee, workflow.StepBugAssignee:
		users, err := h.userRepo.List(ctx)
		if err != nil {
			return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch assignees: %v", err), nil)
		}
		if len(users) == 0 {
			return h.sendTextMessage(c, "No assignees found.", nil)
		}
		accountIDs := make([]string, 0, len(users))
		for _, user := range users {
			accountIDs = append(accountIDs, user.AccountID)
		}
		h.engine.SetOptions(chatID, workflow.FieldAssignee, accountIDs)
		return h.sendTextMessage(c, step.Prompt, keyboards.Assignees(users))

	case workflow.StepTaskLabels, workflow.StepBugLabels:
		return h.sendTextMessage(c, step.Prompt, keyboards.Labels(nil))

	case workflow.StepTaskPriority, workflow.StepBugPriority:
		return h.sendTextMessage(c, step.Prompt, keyboards.Priorities())

	case workflow.StepTaskParent, workflow.StepBugParent:
		parents := h.jiraService.ParentCandidates()
		h.engine.SetOptions(chatID, workflow.FieldParent, parents)
		return h.sendTextMessage(c, step.Prompt, keyboards.ParentIssues(parents))

	case workflow.StepTaskReview, workflow.StepBugReview:
		if err := h.sendReviewSummary(ctx, c); err != nil {
			return err
		}
		return h.sendTextMessage(c, step.Prompt, nil)
	}

	return h.sendTextMessage(c, step.Prompt, nil)
}

// sendReviewSummary renders the collected record before confirmation
func (h *MemberHandler) sendReviewSummary(ctx context.Context, c telebot.Context) error {
	conv, ok := h.engine.Conversation(c.Chat().ID)
	if !ok {
		return nil
	}

	assigneeName := conv.Fields.GetString(workflow.FieldAssignee)
	if users, err := h.userRepo.List(ctx); err == nil {
		for _, user := range users {
			if user.AccountID == assigneeName {
				assigneeName = user.Name
				break
			}
		}
	}

	return h.sendTextMessage(c, helpers.FormatReview(conv.Fields, assigneeName, len(conv.Attachments)), nil)
}

// finishWorkflow runs the completed workflow's side effect
func (h *MemberHandler) finishWorkflow(ctx context.Context, c telebot.Context) error {
	chatID := c.Chat().ID

	record, err := h.engine.Finish(chatID)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Something went wrong: %v", err), nil)
	}

	switch record.Workflow {
	case workflow.MeetingWorkflow:
		return h.createMeeting(ctx, c, record)
	case workflow.GuestWorkflow:
		return h.saveGuest(ctx, c, record)
	case workflow.TaskWorkflow, workflow.BugWorkflow:
		return h.createIssue(ctx, c, record)
	}
	return nil
}

// createMeeting schedules the meeting collected by the workflow
func (h *MemberHandler) createMeeting(ctx context.Context, c telebot.Context, record *workflow.Record) error {
	guests, err := h.guestRepo.List(ctx)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Error creating meeting: %v", err), nil)
	}

	name, date, timeOfDay, selected := services.MeetingFromRecord(record, guests)
	link, err := h.calendarService.ScheduleMeeting(ctx, c.Chat().ID, name, date, timeOfDay, selected)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Error creating meeting: %v", err), nil)
	}

	return h.sendTextMessage(c, fmt.Sprintf("Meeting created successfully! Link: %s", link), nil)
}

// saveGuest persists the guest collected by the workflow
func (h *MemberHandler) saveGuest(ctx context.Context, c telebot.Context, record *workflow.Record) error {
	name := record.Fields.GetString(workflow.FieldName)
	email := record.Fields.GetString(workflow.FieldEmail)

	if _, err := h.guestRepo.Add(ctx, name, email); err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to add guest: %v", err), nil)
	}
	return h.sendTextMessage(c, "Guest added successfully!", nil)
}

// createIssue creates the tracker issue collected by the workflow and
// reports per-attachment failures without rolling the issue back
func (h *MemberHandler) createIssue(ctx context.Context, c telebot.Context, record *workflow.Record) error {
	kind := "Task"
	if record.Workflow == workflow.BugWorkflow {
		kind = "Bug report"
	}

	key, attachErrs, err := h.jiraService.CreateFromRecord(ctx, record)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to create %s: %v", kind, err), nil)
	}

	for _, attachErr := range attachErrs {
		h.sendTextMessage(c, attachErr.Error(), nil)
	}

	return h.sendTextMessage(c, fmt.Sprintf("%s created successfully! Task key: %s", kind, key), nil)
}

// handleMedia absorbs a photo or document sent during an accumulating
// step; media outside such a step is ignored
func (h *MemberHandler) handleMedia(ctx context.Context, c telebot.Context) error {
	chatID := c.Chat().ID

	_, step, ok := h.engine.Current(chatID)
	if !ok || step == nil || step.Kind != workflow.KindAccumulate {
		return nil
	}

	path, err := h.downloadReplyMedia(c, c.Message())
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Error processing attachment: %v", err), nil)
	}
	if path == "" {
		return nil
	}

	if err := h.engine.AppendAttachment(chatID, path); err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Something went wrong: %v", err), nil)
	}

	result, err := h.engine.Advance(chatID, fmt.Sprintf("[Attachment: %s](attached later)", filepath.Base(path)))
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Something went wrong: %v", err), nil)
	}
	return h.handleResult(ctx, c, result)
}

// downloadReplyMedia saves a message's photo or document to a temp file
// and returns its path, or "" when the message carries no media
func (h *MemberHandler) downloadReplyMedia(c telebot.Context, msg *telebot.Message) (string, error) {
	dir := filepath.Join(os.TempDir(), "bot-attachments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	switch {
	case msg.Photo != nil:
		path := filepath.Join(dir, fmt.Sprintf("photo_%s.jpg", msg.Photo.FileID))
		if err := c.Bot().Download(&msg.Photo.File, path); err != nil {
			return "", err
		}
		return path, nil
	case msg.Document != nil:
		name := msg.Document.FileName
		if name == "" {
			name = msg.Document.FileID
		}
		path := filepath.Join(dir, name)
		if err := c.Bot().Download(&msg.Document.File, path); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", nil
}

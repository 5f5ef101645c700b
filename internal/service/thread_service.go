package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/pubsub"
	"github.com/vowlink/wedding_go_server/internal/pkg/queue"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var (
	ErrThreadNotFound      = errors.New("会话不存在")
	ErrNotParticipant      = errors.New("无权访问此会话")
	ErrThreadClosed        = errors.New("会话已关闭，不能再发送消息")
	ErrInvalidTransition   = errors.New("当前状态不允许该流转")
	ErrTransitionForbidden = errors.New("您的角色无权执行该操作")
	ErrCounterpartNotFound = errors.New("对方账号不存在")
	ErrVendorOnlyReceive   = errors.New("会话需由新人发起")
)

// 状态变更时追加的系统通知文案
const (
	noticeAccepted = "商家已接受您的咨询，可以继续沟通了。"
	noticeDeclined = "很抱歉，商家暂时无法承接您的需求。"
	noticeClosed   = "该咨询已由新人关闭。"
)

var transitionNotices = map[string]string{
	model.ThreadAccepted: noticeAccepted,
	model.ThreadDeclined: noticeDeclined,
	model.ThreadClosed:   noticeClosed,
}

// transitions 流转表：(当前状态, 操作者角色) -> 允许的目标状态。
// 接受/婉拒只能商家操作，关闭只能新人操作；closed 是终态。
var transitions = map[string]map[string][]string{
	model.ThreadPending: {
		model.RoleVendor: {model.ThreadAccepted, model.ThreadDeclined},
		model.RoleCouple: {model.ThreadClosed},
	},
	model.ThreadAccepted: {
		model.RoleCouple: {model.ThreadClosed},
	},
	model.ThreadDeclined: {
		model.RoleCouple: {model.ThreadClosed},
	},
}

type ThreadService struct {
	threadRepo  *repository.ThreadRepository
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	coupleRepo  *repository.CoupleRepository
	listingRepo *repository.ListingRepository
	leadQueue   *queue.Queue
	publisher   *pubsub.Publisher
	cfg         *config.Config
}

func NewThreadService(
	threadRepo *repository.ThreadRepository,
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	coupleRepo *repository.CoupleRepository,
	listingRepo *repository.ListingRepository,
	leadQueue *queue.Queue,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *ThreadService {
	return &ThreadService{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		coupleRepo:  coupleRepo,
		listingRepo: listingRepo,
		leadQueue:   leadQueue,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// Send 发送消息。新人首次给商家发消息时自动创建 pending 会话；
// 商家只能在已有会话里回复。会话关闭后双方都不能再发。
func (s *ThreadService) Send(senderID int64, senderRole string, counterpartID int64, req *dto.SendMessageRequest) (*dto.MessageItem, error) {
	vendorID, coupleID := senderID, counterpartID
	if senderRole == model.RoleCouple {
		vendorID, coupleID = counterpartID, senderID
	}

	thread, err := s.threadRepo.GetByPair(vendorID, coupleID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// 线索只能由新人发起
		if senderRole != model.RoleCouple {
			return nil, ErrVendorOnlyReceive
		}

		counterpart, err := s.userRepo.GetByID(counterpartID)
		if err != nil || counterpart.Role != model.RoleVendor {
			return nil, ErrCounterpartNotFound
		}

		thread = &model.Thread{
			VendorID:      vendorID,
			CoupleID:      coupleID,
			Status:        model.ThreadPending,
			LastMessageAt: time.Now(),
		}
		if err := s.threadRepo.Create(thread); err != nil {
			return nil, err
		}
		created = true
	}

	if !thread.CanSend() {
		return nil, ErrThreadClosed
	}

	message := &model.Message{
		ThreadID:   thread.ID,
		SenderID:   senderID,
		ReceiverID: counterpartID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	if err := s.threadRepo.TouchLastMessage(thread.ID, message.CreatedAt); err != nil {
		log.Printf("Failed to touch thread %d: %v", thread.ID, err)
	}

	// 新线索通知商家（入队，worker 发邮件）
	if created {
		s.enqueueLeadNotification(thread, message)
	}

	s.publishEvent(&pubsub.ThreadEvent{
		Type:       pubsub.EventNewMessage,
		ThreadID:   thread.ID,
		SenderID:   senderID,
		ReceiverID: counterpartID,
		Content:    message.Content,
		Status:     thread.Status,
		CreatedAt:  message.CreatedAt.Format(time.RFC3339),
	})

	return s.buildMessageItem(message, thread.Status), nil
}

// Transition 会话状态流转。角色与目标状态按流转表校验，
// 成功后追加一条系统通知消息。
func (s *ThreadService) Transition(actorID int64, actorRole string, threadID int64, target string) error {
	thread, err := s.threadRepo.GetByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrThreadNotFound
		}
		return err
	}

	if actorID != thread.VendorID && actorID != thread.CoupleID {
		return ErrNotParticipant
	}

	// 先判断目标状态从当前状态是否可达（任何角色），
	// 不可达是 InvalidTransition，可达但角色不对是 Forbidden。
	reachable := false
	allowedForActor := false
	for role, targets := range transitions[thread.Status] {
		for _, t := range targets {
			if t == target {
				reachable = true
				if role == actorRole {
					allowedForActor = true
				}
			}
		}
	}
	if !reachable {
		return ErrInvalidTransition
	}
	if !allowedForActor {
		return ErrTransitionForbidden
	}

	if err := s.threadRepo.UpdateStatus(thread.ID, target); err != nil {
		return err
	}

	// 系统通知消息，发送方是操作者本人
	receiverID := thread.CoupleID
	if actorID == thread.CoupleID {
		receiverID = thread.VendorID
	}
	notice := &model.Message{
		ThreadID:   thread.ID,
		SenderID:   actorID,
		ReceiverID: receiverID,
		Content:    transitionNotices[target],
		Automated:  true,
	}
	if err := s.messageRepo.Create(notice); err != nil {
		return err
	}
	if err := s.threadRepo.TouchLastMessage(thread.ID, notice.CreatedAt); err != nil {
		log.Printf("Failed to touch thread %d: %v", thread.ID, err)
	}

	s.publishEvent(&pubsub.ThreadEvent{
		Type:       pubsub.EventStatusChange,
		ThreadID:   thread.ID,
		SenderID:   actorID,
		ReceiverID: receiverID,
		Status:     target,
		CreatedAt:  notice.CreatedAt.Format(time.RFC3339),
	})

	return nil
}

// ListThreads 会话列表，每个对端一条，最近消息在前
func (s *ThreadService) ListThreads(userID int64, role string) ([]*dto.ThreadItem, error) {
	var threads []*model.Thread
	var err error
	if role == model.RoleVendor {
		threads, err = s.threadRepo.ListByVendor(userID)
	} else {
		threads, err = s.threadRepo.ListByCouple(userID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ThreadItem, 0, len(threads))
	for _, thread := range threads {
		counterpartID := thread.CoupleID
		if role == model.RoleCouple {
			counterpartID = thread.VendorID
		}

		item := &dto.ThreadItem{
			ThreadID:      thread.ID,
			CounterpartID: counterpartID,
			Status:        thread.Status,
			LastMessageAt: thread.LastMessageAt.Format(time.RFC3339),
		}

		if last, err := s.messageRepo.GetLastByThread(thread.ID); err == nil {
			item.LastMessage = last.Content
		}
		item.CounterpartName = s.counterpartName(counterpartID, role)

		items = append(items, item)
	}

	return items, nil
}

// ListLeads 商家线索列表（带新人资料），最近消息在前
func (s *ThreadService) ListLeads(vendorID int64) ([]*dto.LeadItem, error) {
	threads, err := s.threadRepo.ListByVendor(vendorID)
	if err != nil {
		return nil, err
	}

	if len(threads) == 0 {
		return []*dto.LeadItem{}, nil
	}

	coupleIDs := make([]int64, len(threads))
	for i, thread := range threads {
		coupleIDs[i] = thread.CoupleID
	}

	couples, err := s.coupleRepo.GetByUserIDs(coupleIDs)
	if err != nil {
		return nil, err
	}
	coupleMap := make(map[int64]*model.Couple, len(couples))
	for _, couple := range couples {
		coupleMap[couple.UserID] = couple
	}

	items := make([]*dto.LeadItem, 0, len(threads))
	for _, thread := range threads {
		item := &dto.LeadItem{
			ThreadID: thread.ID,
			CoupleID: thread.CoupleID,
			Status:   thread.Status,
		}

		if couple, ok := coupleMap[thread.CoupleID]; ok {
			item.Partner1Name = couple.Partner1Name
			item.Partner2Name = couple.Partner2Name
			item.Location = couple.Location
			if couple.WeddingDate != nil {
				item.WeddingDate = couple.WeddingDate.Format("2006-01-02")
			}
		}

		if last, err := s.messageRepo.GetLastByThread(thread.ID); err == nil {
			item.LastMessage = last.Content
		}
		if first, err := s.messageRepo.GetFirstByThread(thread.ID); err == nil {
			item.CreatedAt = first.CreatedAt.Format(time.RFC3339)
		}

		items = append(items, item)
	}

	return items, nil
}

// ListMessages 会话内消息，按时间升序
func (s *ThreadService) ListMessages(userID int64, threadID int64) ([]*dto.MessageItem, error) {
	thread, err := s.threadRepo.GetByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}

	if userID != thread.VendorID && userID != thread.CoupleID {
		return nil, ErrNotParticipant
	}

	messages, err := s.messageRepo.ListByThread(threadID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MessageItem, len(messages))
	for i, message := range messages {
		items[i] = s.buildMessageItem(message, thread.Status)
	}

	return items, nil
}

func (s *ThreadService) buildMessageItem(message *model.Message, status string) *dto.MessageItem {
	return &dto.MessageItem{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		Automated:  message.Automated,
		Status:     status,
		CreatedAt:  message.CreatedAt.Format(time.RFC3339),
	}
}

func (s *ThreadService) counterpartName(counterpartID int64, viewerRole string) string {
	if viewerRole == model.RoleVendor {
		couple, err := s.coupleRepo.GetByUserID(counterpartID)
		if err != nil {
			return ""
		}
		if couple.Partner2Name != "" {
			return couple.Partner1Name + " & " + couple.Partner2Name
		}
		return couple.Partner1Name
	}

	listing, err := s.listingRepo.GetByUserID(counterpartID)
	if err != nil {
		return ""
	}
	return listing.BusinessName
}

func (s *ThreadService) enqueueLeadNotification(thread *model.Thread, message *model.Message) {
	if s.leadQueue == nil {
		return
	}

	vendor, err := s.userRepo.GetByID(thread.VendorID)
	if err != nil {
		log.Printf("Failed to load vendor %d for lead notification: %v", thread.VendorID, err)
		return
	}

	msg := &queue.LeadMessage{
		ThreadID:    thread.ID,
		VendorID:    thread.VendorID,
		CoupleID:    thread.CoupleID,
		VendorEmail: vendor.Email,
		CoupleName:  s.counterpartName(thread.CoupleID, model.RoleVendor),
		Snippet:     message.Content,
	}
	if err := s.leadQueue.Push(context.Background(), msg); err != nil {
		log.Printf("Failed to enqueue lead notification for thread %d: %v", thread.ID, err)
	}
}

func (s *ThreadService) publishEvent(event *pubsub.ThreadEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishThreadEvent(context.Background(), event); err != nil {
		log.Printf("Failed to publish thread event: %v", err)
	}
}

package cron

import (
	"log"
	"time"

	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/service"
)

type Service struct {
	listingRepo *repository.ListingRepository
	stopChan    chan struct{}
}

func NewService(listingRepo *repository.ListingRepository) *Service {
	return &Service{
		listingRepo: listingRepo,
		stopChan:    make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runSubscriptionSweep()
	log.Println("Cron service started (subscription sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runSubscriptionSweep 每小时清理一次过期订阅
func (s *Service) runSubscriptionSweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepSubscriptions()
		}
	}
}

func (s *Service) sweepSubscriptions() {
	if err := s.RunNow(); err != nil {
		log.Printf("Subscription sweep failed: %v", err)
	}
}

// RunNow 立即执行一次过期订阅清理
func (s *Service) RunNow() error {
	cleared, err := service.SweepExpiredSubscriptions(s.listingRepo, time.Now())
	if err != nil {
		return err
	}
	if cleared > 0 {
		log.Printf("Subscription sweep: cleared %d expired subscriptions", cleared)
	}
	return nil
}

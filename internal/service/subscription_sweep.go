package service

import (
	"log"
	"time"

	"github.com/vowlink/wedding_go_server/internal/repository"
)

// SweepExpiredSubscriptions 清理已过期但档位字段还没清掉的订阅。
// 搜索排序在读取时已做到期校验，这里只是把库里的冗余档位字段收敛掉，
// 不动 billing_event_at，后续 webhook 仍按事件时间判断新旧。
func SweepExpiredSubscriptions(listingRepo *repository.ListingRepository, now time.Time) (int, error) {
	expired, err := listingRepo.ListExpiredSubscriptions(now)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, listing := range expired {
		if err := listingRepo.ClearSubscription(listing.ID); err != nil {
			log.Printf("Failed to clear expired subscription for listing %d: %v", listing.ID, err)
			continue
		}
		cleared++
	}

	return cleared, nil
}

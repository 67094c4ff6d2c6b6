package enums

import "fmt"

// NotificationType categorizes in-app notifications.
type NotificationType string

const (
	NotificationTypeOrder     NotificationType = "order"
	NotificationTypePromotion NotificationType = "promotion"
	NotificationTypeSystem    NotificationType = "system"
	NotificationTypeGeneral   NotificationType = "general"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeOrder,
	NotificationTypePromotion,
	NotificationTypeSystem,
	NotificationTypeGeneral,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

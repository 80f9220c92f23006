// Package notifier announces badge awards to an external channel. The
// announcement is best effort: a failure is logged by the caller and never
// blocks the award itself.
package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fpgabadges/badge-api/internal/config"
	"github.com/fpgabadges/badge-api/internal/models"
)

type Notifier interface {
	NotifyAward(user models.User, badge models.Badge, awardedBy *models.User) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier opens a Discord session from the configured bot
// token. Returns an error when the token or channel id is missing so the
// caller can run without announcements.
func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if cfg.DiscordAnnouncementsChannelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordAnnouncementsChannelID,
	}, nil
}

func (n *DiscordNotifier) NotifyAward(user models.User, badge models.Badge, awardedBy *models.User) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}

	name := user.DisplayName
	if name == "" {
		name = user.Username
	}

	message := fmt.Sprintf("🏅 **%s** earned the **%s** badge!", name, badge.Name)
	if awardedBy != nil {
		grantor := awardedBy.DisplayName
		if grantor == "" {
			grantor = awardedBy.Username
		}
		message = fmt.Sprintf("%s Awarded by %s.", message, grantor)
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	return err
}

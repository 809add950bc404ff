// Package client implements the connection manager protocol client: it
// serializes outbound control requests, decodes inbound frames,
// maintains session and correlation state, and dispatches decoded
// payloads to the registered handlers.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/steamlink-go/steamlink/internal/debug"
	"github.com/steamlink-go/steamlink/internal/protocol"
	"github.com/steamlink-go/steamlink/internal/steamlang"
	"github.com/steamlink-go/steamlink/internal/transport"
)

// ErrUnknownBackendResponse is returned when a response passes the wire
// codecs but its contents cannot be reconciled with the accompanying
// metadata, such as an unlocked achievement with no schema entry. This
// is a strict parsing failure, not a transient condition.
var ErrUnknownBackendResponse = errors.New("unrecognized backend response")

// How long a proactively requested app id suppresses duplicate product
// info requests.
const requestedAppTTL = 5 * time.Minute

// marshaler is any protocol message body that can serialize itself.
type marshaler interface {
	Marshal() []byte
}

// Options configures a Client beyond its required collaborators.
type Options struct {
	// ReceiveTimeout bounds each socket receive so the loop can
	// interleave deferred imports. Defaults to 100ms.
	ReceiveTimeout time.Duration
	// Language used for rich presence localization requests. Defaults
	// to english.
	Language string
	// PacketLogging dumps every frame sent and received to the logger.
	PacketLogging bool
}

// Client drives one connection manager session over an established
// transport. All dispatching happens on the goroutine running Run; the
// heartbeat is the only other concurrent activity and shares only the
// serialized send path.
type Client struct {
	transport transport.Transport
	logger    *logrus.Logger
	handlers  Handlers
	opts      Options

	sendMu sync.Mutex

	session  session
	jobs     jobCounter
	deferred deferredQueue

	collections *collectionsAccumulator

	// Apps we already asked product info for, so a stream of persona
	// updates does not turn into a stream of duplicate requests.
	requestedApps *cache.Cache

	group   *errgroup.Group
	loopCtx context.Context
}

// New returns a client speaking over t and delivering events to h.
func New(t transport.Transport, logger *logrus.Logger, h Handlers, opts Options) *Client {
	if opts.ReceiveTimeout <= 0 {
		opts.ReceiveTimeout = 100 * time.Millisecond
	}
	if opts.Language == "" {
		opts.Language = "english"
	}
	return &Client{
		transport:     t,
		logger:        logger,
		handlers:      h,
		opts:          opts,
		collections:   newCollectionsAccumulator(),
		requestedApps: cache.New(requestedAppTTL, requestedAppTTL),
	}
}

// Run drives the cooperative loop: drain the deferred import queue,
// then attempt one bounded receive, dispatch whatever arrived, repeat.
// It returns on context cancellation, transport failure, or a strict
// integrity error from a response decoder.
func (c *Client) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	c.group, c.loopCtx = g, gctx

	g.Go(func() error {
		defer c.session.stopHeartbeat()
		return c.loop(gctx)
	})

	return g.Wait()
}

func (c *Client) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.drainDeferred(); err != nil {
			return err
		}

		packet, err := c.transport.Receive(c.opts.ReceiveTimeout)
		if errors.Is(err, transport.ErrReceiveTimeout) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "receiving packet")
		}

		if err := c.processPacket(packet); err != nil {
			return err
		}
	}
}

// drainDeferred issues the requests for every queued import task.
// Issuing is fire and forget; completion is observed later through the
// ordinary dispatch path.
func (c *Client) drainDeferred() error {
	for {
		job, ok := c.deferred.pop()
		if !ok {
			return nil
		}
		c.logger.Infof("running deferred job %+v", job)

		switch job.Kind {
		case ImportGameStats:
			if err := c.importGameStats(job.GameID); err != nil {
				return err
			}
			if err := c.importGameTime(job.GameID); err != nil {
				return err
			}
		case ImportCollections:
			if err := c.importCollections(); err != nil {
				return err
			}
		default:
			c.logger.Warnf("dropping deferred job of unknown kind %d", job.Kind)
		}
	}
}

// QueueImportGameStats schedules a stats-then-playtime import for the
// given game. Safe to call from any goroutine.
func (c *Client) QueueImportGameStats(gameID uint64) {
	c.deferred.push(DeferredJob{Kind: ImportGameStats, GameID: gameID})
}

// QueueImportCollections schedules a collections download.
func (c *Client) QueueImportCollections() {
	c.deferred.push(DeferredJob{Kind: ImportCollections})
}

// Collections blocks until the collections download has been fully
// consumed and returns the accumulated name to app-ids mapping.
func (c *Client) Collections(ctx context.Context) (map[string][]uint32, error) {
	return c.collections.wait(ctx)
}

// LogOn begins a session for the given identity. The logon result
// arrives asynchronously through the LogOn handler.
func (c *Client) LogOn(steamID steamlang.SteamID, miniprofileID uint64, accountName, token string) error {
	msg := &protocol.ClientLogon{
		ProtocolVersion:  protocol.LogonProtocolVersion,
		ClientOSType:     protocol.LogonClientOSType,
		UIMode:           protocol.LogonUIMode,
		ChatMode:         protocol.LogonChatMode,
		QosLevel:         protocol.LogonQosLevel,
		ClientInstanceID: 0,
		AccountName:      accountName,
		WebLogonNonce:    token,
	}

	c.session.begin(uint64(steamID), miniprofileID)
	if err := c.send(steamlang.EMsgClientLogon, msg, nil); err != nil {
		c.session.reset()
		return err
	}
	return nil
}

// SetPersonaState publishes our own online status.
func (c *Client) SetPersonaState(state steamlang.EPersonaState) error {
	return c.send(steamlang.EMsgClientChangeStatus, &protocol.ClientChangeStatus{PersonaState: state}, nil)
}

// GetFriendsStatuses asks the chat service to push persona state for
// the whole roster.
func (c *Client) GetFriendsStatuses() error {
	return c.sendServiceMethod(steamlang.MethodRequestFriendPersonaStates,
		&protocol.RequestFriendPersonaStatesRequest{}, nil)
}

// GetUserInfos asks for persona state on specific users.
func (c *Client) GetUserInfos(users []steamlang.SteamID, flags uint32) error {
	msg := &protocol.ClientRequestFriendData{PersonaStateRequested: flags}
	for _, u := range users {
		msg.Friends = append(msg.Friends, uint64(u))
	}
	return c.send(steamlang.EMsgClientRequestFriendData, msg, nil)
}

// GetAppsInfo requests product info for the given apps.
func (c *Client) GetAppsInfo(appIDs []uint32) error {
	if len(appIDs) == 0 {
		return nil
	}
	c.logger.Infof("requesting product info for apps %v", appIDs)
	return c.send(steamlang.EMsgPICSProductInfoRequest, &protocol.PICSProductInfoRequest{AppIDs: appIDs}, nil)
}

// GetPackagesInfo requests product info for the given packages.
func (c *Client) GetPackagesInfo(packageIDs []uint32) error {
	if len(packageIDs) == 0 {
		return nil
	}
	c.logger.Infof("requesting product info for packages %v", packageIDs)
	return c.send(steamlang.EMsgPICSProductInfoRequest, &protocol.PICSProductInfoRequest{PackageIDs: packageIDs}, nil)
}

// GetPresenceLocalization fetches the rich presence token table for a
// game in the configured language.
func (c *Client) GetPresenceLocalization(appID uint32) error {
	c.logger.Infof("requesting rich presence localization for app %d (%s)", appID, c.opts.Language)
	return c.sendServiceMethod(steamlang.MethodRichPresenceLocalization,
		&protocol.RichPresenceLocalizationRequest{AppID: appID, Language: c.opts.Language}, nil)
}

// Close tears down the session's background activity. The transport
// itself belongs to the caller.
func (c *Client) Close() {
	c.session.stopHeartbeat()
}

func (c *Client) importGameStats(gameID uint64) error {
	c.logger.Infof("importing stats for game %d", gameID)
	return c.send(steamlang.EMsgClientGetUserStats, &protocol.ClientGetUserStats{GameID: gameID}, nil)
}

// importCollections downloads the cloud config namespace holding the
// user's collection definitions.
func (c *Client) importCollections() error {
	c.logger.Info("importing collections")
	return c.sendServiceMethod(steamlang.MethodCloudConfigDownload,
		&protocol.CloudConfigDownloadRequest{
			Versions: []protocol.CloudConfigNamespaceVersion{{ENamespace: 1}},
		}, nil)
}

// importGameTime threads the game id through as the job id so that
// concurrent identically named calls can be told apart by the caller.
func (c *Client) importGameTime(gameID uint64) error {
	c.logger.Infof("importing playtime for game %d", gameID)
	return c.sendServiceMethod(steamlang.MethodFriendsGameplayInfo,
		&protocol.FriendsGameplayInfoRequest{AppID: uint32(gameID)},
		&jobIDs{source: gameID, target: gameID})
}

// jobIDs overrides the correlation ids stamped into a service method
// call. When nil, a fresh id from the counter is used as the source.
type jobIDs struct {
	source uint64
	target uint64
}

func (c *Client) sendServiceMethod(method steamlang.MethodID, body marshaler, ids *jobIDs) error {
	header := &protocol.Header{TargetJobName: protocol.String(method.String())}
	if ids != nil {
		header.SourceJobID = protocol.Uint64(ids.source)
		header.TargetJobID = protocol.Uint64(ids.target)
	} else {
		header.SourceJobID = protocol.Uint64(c.jobs.next())
	}
	return c.send(steamlang.EMsgServiceMethodCallFromClient, body, header)
}

// send stamps the session identifiers into the header and writes one
// frame. Sends are serialized because the heartbeat shares this path.
func (c *Client) send(emsg steamlang.EMsg, body marshaler, header *protocol.Header) error {
	if header == nil {
		header = &protocol.Header{}
	}
	steamID, _, sessionID := c.session.identity()
	if steamID != nil {
		header.SteamID = steamID
	}
	if sessionID != nil {
		header.SessionID = sessionID
	}

	frame := protocol.EncodeFrame(emsg, header, body.Marshal())

	if c.opts.PacketLogging {
		debug.DumpFrame(c.logger, "send", frame)
	}
	c.logger.Debugf("sending message %d (%d bytes)", emsg, len(frame))

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.transport.Send(frame)
}

// startHeartbeat spins up the periodic keep-alive. A send failure is a
// transport error and takes the whole run down; it is not retried.
func (c *Client) startHeartbeat(interval time.Duration) {
	if c.group == nil || interval <= 0 {
		return
	}

	hbCtx, cancel := context.WithCancel(c.loopCtx)
	c.session.replaceHeartbeat(cancel)

	c.group.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-hbCtx.Done():
				return nil
			case <-ticker.C:
				if err := c.send(steamlang.EMsgClientHeartBeat, &protocol.ClientHeartBeat{}, nil); err != nil {
					return errors.Wrap(err, "sending heartbeat")
				}
			}
		}
	})
}

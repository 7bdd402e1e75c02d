package gateway

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/calewin/sensornet/internal/infrastructure/config"
	"github.com/calewin/sensornet/internal/infrastructure/mqtt"
	"github.com/calewin/sensornet/internal/message"
	"github.com/calewin/sensornet/internal/protocol"
	"github.com/calewin/sensornet/internal/sensor"
)

// inboundBuffer bounds the queue between MQTT delivery goroutines and
// the processing loop. Frames are small; a burst from a reconnecting
// bridge fits comfortably.
const inboundBuffer = 256

// persistTimeout bounds the final state flush during shutdown.
const persistTimeout = 10 * time.Second

// MQTTClient is the interface for MQTT operations.
// This allows mocking in tests and flexibility in implementation.
type MQTTClient interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// TelemetryWriter records sensor readings to a time-series store.
// All methods are fire-and-forget. It is optional; a nil writer
// disables telemetry.
type TelemetryWriter interface {
	WriteChildValue(nodeID, childID int, valueType string, value string)
	WriteBatteryLevel(nodeID int, level int)
	WriteHeartbeat(nodeID int, uptime int64)
}

// Logger is the interface for gateway diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures a Gateway.
type Options struct {
	// Config supplies the topic prefix, persistence interval, QoS and
	// the statically configured smart-sleep nodes.
	Config *config.Config

	// Registry owns the live sensor state. Required.
	Registry *sensor.Registry

	// MQTT publishes and subscribes to gateway frames. Required.
	MQTT MQTTClient

	// Telemetry receives value/battery/heartbeat points. Optional.
	Telemetry TelemetryWriter

	// Logger receives diagnostics. Optional.
	Logger Logger
}

// Gateway applies inbound frames to the sensor registry and emits
// outbound frames for value requests and smart-sleep flushes.
//
// Thread Safety: all frame processing happens on one goroutine, so
// handlers never contend with each other. Start and Stop are safe to
// call from any goroutine.
type Gateway struct {
	cfg       *config.Config
	registry  *sensor.Registry
	mqtt      MQTTClient
	telemetry TelemetryWriter
	topics    mqtt.Topics
	qos       byte

	// smartSleep holds the statically configured smart-sleep node ids.
	// Nodes can also enter smart-sleep tracking dynamically via a
	// pre-sleep notification.
	smartSleep map[int]bool

	inbound chan inboundFrame

	started  bool
	startMu  sync.Mutex
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	logger Logger
}

// inboundFrame pairs parsed topic fields with the message body. At
// most one of frame, command or nodeCmd is meaningful; command is
// non-nil for controller set commands, nodeCmd for node-level
// commands.
type inboundFrame struct {
	frame   mqtt.Frame
	command *mqtt.Command
	nodeCmd *mqtt.NodeCommand
	payload string
}

// New creates a gateway from its options.
func New(opts Options) (*Gateway, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	if opts.MQTT == nil {
		return nil, ErrNoMQTT
	}
	if opts.Config == nil {
		return nil, fmt.Errorf("gateway: config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	smartSleep := make(map[int]bool, len(opts.Config.Gateway.SmartSleepNodes))
	for _, id := range opts.Config.Gateway.SmartSleepNodes {
		smartSleep[id] = true
	}

	// #nosec G115 -- QoS validated to 0..2 by config.Validate
	return &Gateway{
		cfg:        opts.Config,
		registry:   opts.Registry,
		mqtt:       opts.MQTT,
		telemetry:  opts.Telemetry,
		topics:     mqtt.NewTopics(opts.Config.Gateway.TopicPrefix),
		qos:        byte(opts.Config.MQTT.QoS),
		smartSleep: smartSleep,
		inbound:    make(chan inboundFrame, inboundBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}, nil
}

// Start subscribes to the inbound topic tree and launches the
// processing and persistence loops. It returns once the subscription
// is established.
func (g *Gateway) Start(ctx context.Context) error {
	g.startMu.Lock()
	defer g.startMu.Unlock()
	if g.started {
		return ErrAlreadyStarted
	}

	g.bootstrapSmartSleep(ctx)

	topic := g.topics.AllInbound()
	if err := g.mqtt.Subscribe(topic, g.qos, g.handleInbound); err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}

	cmdTopic := g.topics.AllCommands()
	if err := g.mqtt.Subscribe(cmdTopic, g.qos, g.handleCommandInbound); err != nil {
		return fmt.Errorf("subscribing to %s: %w", cmdTopic, err)
	}

	nodeCmdTopic := g.topics.AllNodeCommands()
	if err := g.mqtt.Subscribe(nodeCmdTopic, g.qos, g.handleNodeCommandInbound); err != nil {
		return fmt.Errorf("subscribing to %s: %w", nodeCmdTopic, err)
	}

	g.wg.Add(2)
	go g.processLoop(ctx)
	go g.persistLoop(ctx)

	g.started = true
	stats := g.registry.GetStats()
	g.logger.Info("gateway started",
		"topic", topic,
		"nodes", stats.TotalSensors,
		"smart_sleep_nodes", stats.SmartSleepNodes,
	)
	return nil
}

// Stop shuts the gateway down and persists all live sensor state.
// It blocks until the loops have drained.
func (g *Gateway) Stop() {
	g.stopOnce.Do(func() {
		close(g.done)
		g.wg.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := g.registry.PersistAll(ctx); err != nil {
			g.logger.Error("persisting state on shutdown", "error", err)
		}

		g.logger.Info("gateway stopped")
	})
}

// bootstrapSmartSleep enables shadow tracking for statically
// configured smart-sleep nodes that already have children on record.
// Nodes without children get their shadows when they present.
func (g *Gateway) bootstrapSmartSleep(ctx context.Context) {
	for id := range g.smartSleep {
		err := g.registry.Update(ctx, id, func(s *sensor.Sensor) error {
			s.InitSmartSleepMode()
			return nil
		})
		if err != nil {
			g.logger.Error("bootstrapping smart-sleep node", "node", id, "error", err)
		}
	}
}

// handleInbound parses a frame topic and queues it for the processing
// loop. Runs on paho's delivery goroutines.
func (g *Gateway) handleInbound(topic string, payload []byte) error {
	frame, err := g.topics.ParseInbound(topic)
	if err != nil {
		return err
	}

	select {
	case g.inbound <- inboundFrame{frame: frame, payload: string(payload)}:
		return nil
	case <-g.done:
		return nil
	}
}

// handleCommandInbound parses a controller set command and queues it
// for the processing loop.
func (g *Gateway) handleCommandInbound(topic string, payload []byte) error {
	cmd, err := g.topics.ParseCommand(topic)
	if err != nil {
		return err
	}

	select {
	case g.inbound <- inboundFrame{command: &cmd, payload: string(payload)}:
		return nil
	case <-g.done:
		return nil
	}
}

// handleNodeCommandInbound parses a node-level command and queues it
// for the processing loop.
func (g *Gateway) handleNodeCommandInbound(topic string, payload []byte) error {
	cmd, err := g.topics.ParseNodeCommand(topic)
	if err != nil {
		return err
	}

	select {
	case g.inbound <- inboundFrame{nodeCmd: &cmd, payload: string(payload)}:
		return nil
	case <-g.done:
		return nil
	}
}

// processLoop serializes all frame handling onto one goroutine.
func (g *Gateway) processLoop(ctx context.Context) {
	defer g.wg.Done()
	for {
		select {
		case <-g.done:
			return
		case <-ctx.Done():
			return
		case in := <-g.inbound:
			if in.command != nil {
				g.handleSetCommand(ctx, *in.command, in.payload)
				continue
			}
			if in.nodeCmd != nil {
				g.handleNodeCommand(ctx, *in.nodeCmd)
				continue
			}
			g.dispatch(ctx, in.frame, in.payload)
		}
	}
}

// persistLoop periodically saves all live sensor state.
func (g *Gateway) persistLoop(ctx context.Context) {
	defer g.wg.Done()
	ticker := time.NewTicker(g.cfg.GetPersistInterval())
	defer ticker.Stop()
	for {
		select {
		case <-g.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := g.registry.PersistAll(ctx); err != nil {
				g.logger.Error("periodic persist failed", "error", err)
			}
		}
	}
}

// dispatch routes one inbound frame to its command handler.
func (g *Gateway) dispatch(ctx context.Context, f mqtt.Frame, payload string) {
	if f.Ack {
		// Ack echoes of our own sends carry no new state.
		g.logger.Debug("ack frame", "node", f.NodeID, "child", f.ChildID)
		return
	}

	switch protocol.Command(f.Command) {
	case protocol.CommandPresentation:
		g.handlePresentation(ctx, f, payload)
	case protocol.CommandSet:
		g.handleSet(ctx, f, payload)
	case protocol.CommandReq:
		g.handleReq(ctx, f)
	case protocol.CommandInternal:
		g.handleInternal(ctx, f, payload)
	case protocol.CommandStream:
		// OTA firmware transfer is handled by dedicated tooling.
		g.logger.Debug("ignoring stream frame", "node", f.NodeID)
	default:
		g.logger.Warn("unknown command", "node", f.NodeID, "command", f.Command)
	}
}

// handlePresentation records a node or child presentation.
//
// A node presentation (child id 255) carries the node type and the
// protocol version as payload, and clears any pending reboot request
// since a presenting node has just booted. A child presentation
// registers the child with its type and description.
func (g *Gateway) handlePresentation(ctx context.Context, f mqtt.Frame, payload string) {
	// #nosec G115 -- subtype range-checked by ParseInbound
	pres := protocol.Presentation(f.SubType)

	err := g.registry.Update(ctx, f.NodeID, func(s *sensor.Sensor) error {
		if f.ChildID == message.MaxChildID {
			s.Type = pres
			if payload != "" {
				if err := s.SetProtocolVersion(payload); err != nil {
					g.logger.Warn("node presented unusable protocol version",
						"node", f.NodeID, "payload", payload, "error", err)
				}
			}
			s.Reboot = false
			return nil
		}

		s.AddChildSensor(f.ChildID, pres, payload)
		if g.smartSleep[f.NodeID] {
			s.InitSmartSleepMode()
		}
		return nil
	})
	if err != nil {
		g.logger.Error("handling presentation", "node", f.NodeID, "child", f.ChildID, "error", err)
		return
	}

	g.logger.Debug("presentation",
		"node", f.NodeID, "child", f.ChildID, "type", pres.String())
}

// handleSet applies a reported value to a child sensor and forwards it
// to telemetry.
func (g *Gateway) handleSet(ctx context.Context, f mqtt.Frame, payload string) {
	// #nosec G115 -- subtype range-checked by ParseInbound
	vt := protocol.SetReq(f.SubType)

	err := g.registry.Update(ctx, f.NodeID, func(s *sensor.Sensor) error {
		return s.UpdateChildValue(f.ChildID, vt, payload)
	})
	if err != nil {
		g.logger.Warn("rejected set",
			"node", f.NodeID, "child", f.ChildID, "type", vt.String(), "error", err)
		return
	}

	if g.telemetry != nil {
		g.telemetry.WriteChildValue(f.NodeID, f.ChildID, vt.String(), payload)
	}
}

// handleReq answers a node's request for a value. For smart-sleep
// children a pending desired value wins over the last actual value.
// An unset value produces no reply.
func (g *Gateway) handleReq(ctx context.Context, f mqtt.Frame) {
	s, err := g.registry.Get(f.NodeID)
	if err != nil {
		g.logger.Warn("req from unknown node", "node", f.NodeID, "child", f.ChildID)
		return
	}

	// #nosec G115 -- subtype range-checked by ParseInbound
	vt := protocol.SetReq(f.SubType)
	value, ok, err := s.GetDesiredValue(f.ChildID, vt)
	if err != nil {
		g.logger.Warn("req for unknown child",
			"node", f.NodeID, "child", f.ChildID, "error", err)
		return
	}
	if !ok {
		g.logger.Debug("req for unset value",
			"node", f.NodeID, "child", f.ChildID, "type", vt.String())
		return
	}

	// A smart-sleep node requests right before sleeping and only
	// listens again after its next wake-up heartbeat, so the reply is
	// queued for the flush rather than sent while nobody is listening.
	if s.IsSmartSleepNode() {
		line, err := message.NewSet(f.NodeID, f.ChildID, vt, value).Encode()
		if err != nil {
			g.logger.Error("encoding req reply", "node", f.NodeID, "error", err)
			return
		}
		err = g.registry.Update(ctx, f.NodeID, func(s *sensor.Sensor) error {
			s.Queue = append(s.Queue, line)
			return nil
		})
		if err != nil {
			g.logger.Error("queueing req reply", "node", f.NodeID, "error", err)
		}
		return
	}

	g.publishSet(f.NodeID, f.ChildID, vt, value)
}

// handleInternal routes node-internal traffic: metadata reports,
// liveness signals and id allocation.
func (g *Gateway) handleInternal(ctx context.Context, f mqtt.Frame, payload string) {
	// #nosec G115 -- subtype range-checked by ParseInbound
	switch protocol.Internal(f.SubType) {
	case protocol.InternalBatteryLevel:
		g.handleBatteryLevel(ctx, f.NodeID, payload)
	case protocol.InternalSketchName:
		g.updateNode(ctx, f.NodeID, func(s *sensor.Sensor) { s.SketchName = payload })
	case protocol.InternalSketchVersion:
		g.updateNode(ctx, f.NodeID, func(s *sensor.Sensor) { s.SketchVersion = payload })
	case protocol.InternalHeartbeatResponse:
		g.handleHeartbeat(ctx, f.NodeID, payload)
	case protocol.InternalPreSleepNotification:
		g.handlePreSleep(ctx, f.NodeID)
	case protocol.InternalIDRequest:
		g.handleIDRequest(ctx)
	case protocol.InternalTime:
		g.handleTimeRequest(f.NodeID)
	default:
		g.logger.Debug("ignoring internal frame",
			"node", f.NodeID, "subtype", f.SubType)
	}
}

// updateNode applies a metadata mutation to a node via the registry,
// logging rather than propagating any registry error.
func (g *Gateway) updateNode(ctx context.Context, nodeID int, fn func(s *sensor.Sensor)) {
	err := g.registry.Update(ctx, nodeID, func(s *sensor.Sensor) error {
		fn(s)
		return nil
	})
	if err != nil {
		g.logger.Warn("updating node metadata", "node", nodeID, "error", err)
	}
}

func (g *Gateway) handleBatteryLevel(ctx context.Context, nodeID int, payload string) {
	level, err := strconv.Atoi(payload)
	if err != nil {
		g.logger.Warn("non-numeric battery level", "node", nodeID, "payload", payload)
		return
	}

	err = g.registry.Update(ctx, nodeID, func(s *sensor.Sensor) error {
		return s.SetBatteryLevel(level)
	})
	if err != nil {
		g.logger.Warn("rejected battery level", "node", nodeID, "level", level, "error", err)
		return
	}

	if g.telemetry != nil {
		g.telemetry.WriteBatteryLevel(nodeID, level)
	}
}

// handleHeartbeat records the node's uptime and, for smart-sleep
// nodes, flushes pending traffic while the node is briefly listening.
func (g *Gateway) handleHeartbeat(ctx context.Context, nodeID int, payload string) {
	uptime, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		g.logger.Warn("non-numeric heartbeat", "node", nodeID, "payload", payload)
		return
	}

	err = g.registry.Update(ctx, nodeID, func(s *sensor.Sensor) error {
		return s.SetHeartbeat(uptime)
	})
	if err != nil {
		g.logger.Warn("rejected heartbeat", "node", nodeID, "uptime", uptime, "error", err)
		return
	}

	if g.telemetry != nil {
		g.telemetry.WriteHeartbeat(nodeID, uptime)
	}

	g.flushNode(ctx, nodeID)
}

// handlePreSleep puts the node under smart-sleep tracking and flushes
// pending traffic before the node powers its radio down.
func (g *Gateway) handlePreSleep(ctx context.Context, nodeID int) {
	err := g.registry.Update(ctx, nodeID, func(s *sensor.Sensor) error {
		s.InitSmartSleepMode()
		return nil
	})
	if err != nil {
		g.logger.Error("entering smart-sleep tracking", "node", nodeID, "error", err)
		return
	}

	g.flushNode(ctx, nodeID)
}

// handleIDRequest allocates the lowest free node id and broadcasts it.
func (g *Gateway) handleIDRequest(ctx context.Context) {
	taken := make(map[int]bool)
	for _, id := range g.registry.NodeIDs() {
		taken[id] = true
	}

	id := -1
	for candidate := 1; candidate < message.MaxNodeID; candidate++ {
		if !taken[candidate] {
			id = candidate
			break
		}
	}
	if id < 0 {
		g.logger.Error("node id space exhausted")
		return
	}

	if _, err := g.registry.GetOrCreate(ctx, id); err != nil {
		g.logger.Error("reserving node id", "node", id, "error", err)
		return
	}

	g.publishInternal(message.MaxNodeID, protocol.InternalIDResponse, strconv.Itoa(id))
	g.logger.Info("assigned node id", "node", id)
}

// handleTimeRequest answers a node's clock request with epoch seconds.
func (g *Gateway) handleTimeRequest(nodeID int) {
	g.publishInternal(nodeID, protocol.InternalTime, strconv.FormatInt(time.Now().Unix(), 10))
}

// handleSetCommand applies a controller's request to change a child's
// value. Smart-sleep nodes get the value staged in the desired-state
// shadow and sent on their next wake; awake nodes get it sent
// immediately when it validates.
func (g *Gateway) handleSetCommand(ctx context.Context, cmd mqtt.Command, value string) {
	s, err := g.registry.Get(cmd.NodeID)
	if err != nil {
		g.logger.Warn("set command for unknown node", "node", cmd.NodeID)
		return
	}

	if cmd.SubType < 0 || cmd.SubType > 255 {
		g.logger.Warn("set command subtype out of range", "node", cmd.NodeID, "subtype", cmd.SubType)
		return
	}
	// #nosec G115 -- range checked above
	vt := protocol.SetReq(cmd.SubType)

	if s.IsSmartSleepNode() {
		err := g.registry.Update(ctx, cmd.NodeID, func(s *sensor.Sensor) error {
			if !s.SetChildDesiredState(cmd.ChildID, vt, value) {
				return fmt.Errorf("gateway: desired state rejected for node %d child %d", cmd.NodeID, cmd.ChildID)
			}
			return nil
		})
		if err != nil {
			g.logger.Warn("set command rejected", "node", cmd.NodeID, "child", cmd.ChildID, "error", err)
		}
		return
	}

	if !s.ValidateChildState(cmd.ChildID, vt, value) {
		g.logger.Warn("set command failed validation",
			"node", cmd.NodeID, "child", cmd.ChildID, "type", vt.String(), "value", value)
		return
	}
	g.publishSet(cmd.NodeID, cmd.ChildID, vt, value)
}

// Node command actions accepted from the controller.
const actionReboot = "reboot"

// handleNodeCommand routes a node-level controller command.
func (g *Gateway) handleNodeCommand(ctx context.Context, cmd mqtt.NodeCommand) {
	switch cmd.Action {
	case actionReboot:
		g.handleRebootCommand(ctx, cmd.NodeID)
	default:
		g.logger.Warn("unknown node command", "node", cmd.NodeID, "action", cmd.Action)
	}
}

// handleRebootCommand marks a node for reboot. Awake nodes get the
// request immediately; smart-sleep nodes get it on their next wake.
// Either way the flag stays set until the node presents itself again,
// which confirms the reboot happened.
func (g *Gateway) handleRebootCommand(ctx context.Context, nodeID int) {
	s, err := g.registry.Get(nodeID)
	if err != nil {
		g.logger.Warn("reboot command for unknown node", "node", nodeID)
		return
	}

	err = g.registry.Update(ctx, nodeID, func(s *sensor.Sensor) error {
		s.Reboot = true
		return nil
	})
	if err != nil {
		g.logger.Error("marking node for reboot", "node", nodeID, "error", err)
		return
	}

	if !s.IsSmartSleepNode() {
		g.publishInternal(nodeID, protocol.InternalReboot, "")
	}
	g.logger.Info("reboot requested", "node", nodeID, "smart_sleep", s.IsSmartSleepNode())
}

// flushNode sends everything waiting for a node while it is listening:
// a reboot request if one is pending, queued messages in FIFO order,
// then every pending desired value that still validates.
func (g *Gateway) flushNode(ctx context.Context, nodeID int) {
	s, err := g.registry.Get(nodeID)
	if err != nil {
		return
	}

	if s.Reboot {
		g.publishInternal(nodeID, protocol.InternalReboot, "")
	}

	var queued []string
	err = g.registry.Update(ctx, nodeID, func(s *sensor.Sensor) error {
		queued = s.Queue
		s.Queue = nil
		return nil
	})
	if err != nil {
		g.logger.Error("draining node queue", "node", nodeID, "error", err)
	}
	for _, line := range queued {
		g.publishEncoded(nodeID, line)
	}

	g.flushDesiredState(s)
}

// flushDesiredState publishes one set frame per pending desired value.
// Values stay in the shadow until the node reports them back, so a
// missed flush is retried on the node's next wake.
func (g *Gateway) flushDesiredState(s *sensor.Sensor) {
	childIDs := make([]int, 0, len(s.NewState))
	for id := range s.NewState {
		childIDs = append(childIDs, id)
	}
	sort.Ints(childIDs)

	for _, childID := range childIDs {
		shadow := s.NewState[childID]

		types := make([]protocol.SetReq, 0, len(shadow.Values))
		for vt := range shadow.Values {
			types = append(types, vt)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

		for _, vt := range types {
			value := shadow.Values[vt]
			if value == "" {
				continue
			}
			if !s.ValidateChildState(childID, vt, value) {
				continue
			}
			g.publishSet(s.ID, childID, vt, value)
		}
	}
}

// publishSet emits one outbound set frame.
func (g *Gateway) publishSet(nodeID, childID int, vt protocol.SetReq, value string) {
	topic := g.topics.Outbound(nodeID, childID, uint8(protocol.CommandSet), false, uint8(vt))
	if err := g.mqtt.Publish(topic, []byte(value), g.qos, false); err != nil {
		g.logger.Error("publishing set", "topic", topic, "error", err)
	}
}

// publishInternal emits one outbound internal frame addressed to the
// node itself.
func (g *Gateway) publishInternal(nodeID int, sub protocol.Internal, payload string) {
	topic := g.topics.Outbound(nodeID, message.MaxChildID,
		uint8(protocol.CommandInternal), false, uint8(sub))
	if err := g.mqtt.Publish(topic, []byte(payload), g.qos, false); err != nil {
		g.logger.Error("publishing internal", "topic", topic, "error", err)
	}
}

// publishEncoded re-emits a queued line-form message as an outbound
// frame. Undecodable entries are dropped with a log; they can only
// appear through a bug in the enqueuing path.
func (g *Gateway) publishEncoded(nodeID int, line string) {
	msg, err := message.Decode(line)
	if err != nil {
		g.logger.Error("dropping undecodable queued message", "node", nodeID, "error", err)
		return
	}

	topic := g.topics.Outbound(msg.NodeID, msg.ChildID, uint8(msg.Command), msg.Ack, msg.SubType)
	if err := g.mqtt.Publish(topic, []byte(msg.Payload), g.qos, false); err != nil {
		g.logger.Error("publishing queued message", "topic", topic, "error", err)
	}
}

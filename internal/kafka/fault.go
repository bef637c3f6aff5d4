package kafka

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/IBM/sarama"
	kafkago "github.com/segmentio/kafka-go"
)

// Операции цикла, в которых может произойти сбой.
const (
	OpPoll   = "poll"
	OpHandle = "handle"
	OpCommit = "commit"
	OpRewind = "rewind"
)

// FaultKind — класс сбоя. Нулевое значение — неклассифицированный сбой.
type FaultKind uint8

const (
	FaultUnclassified FaultKind = iota
	FaultAuthorization
	FaultTransport
	FaultSink
)

func (k FaultKind) String() string {
	switch k {
	case FaultAuthorization:
		return "authorization"
	case FaultTransport:
		return "transport"
	case FaultSink:
		return "sink"
	default:
		return "unclassified"
	}
}

// Fault — классифицированный сбой итерации цикла.
type Fault struct {
	Kind FaultKind
	Op   string
	Err  error
}

func (f *Fault) Error() string {
	if f.Op == "" {
		return fmt.Sprintf("%s fault: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s fault during %s: %v", f.Kind, f.Op, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Classify — относит ошибку к одному из классов сбоя.
// Уже классифицированный *Fault в цепочке имеет приоритет.
func Classify(op string, err error) *Fault {
	if err == nil {
		return nil
	}

	var f *Fault
	if errors.As(err, &f) {
		if f.Op == "" {
			return &Fault{Kind: f.Kind, Op: op, Err: f.Err}
		}
		return f
	}

	return &Fault{Kind: classifyKind(err), Op: op, Err: err}
}

func classifyKind(err error) FaultKind {
	if errors.Is(err, domain.ErrSinkRejected) || errors.Is(err, domain.ErrSinkUnavailable) {
		return FaultSink
	}

	var kgErr kafkago.Error
	if errors.As(err, &kgErr) {
		switch kgErr {
		case kafkago.TopicAuthorizationFailed,
			kafkago.GroupAuthorizationFailed,
			kafkago.ClusterAuthorizationFailed,
			kafkago.SASLAuthenticationFailed,
			kafkago.TransactionalIDAuthorizationFailed:
			return FaultAuthorization
		}
		return FaultTransport
	}

	var kErr sarama.KError
	if errors.As(err, &kErr) {
		switch kErr {
		case sarama.ErrTopicAuthorizationFailed,
			sarama.ErrGroupAuthorizationFailed,
			sarama.ErrClusterAuthorizationFailed,
			sarama.ErrSASLAuthenticationFailed:
			return FaultAuthorization
		}
		return FaultTransport
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FaultTransport
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return FaultTransport
	}
	return FaultUnclassified
}

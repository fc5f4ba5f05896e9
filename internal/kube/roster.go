package kube

import (
	"context"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/guimove/ocpfleet/internal/roster"
)

// RosterRef locates a roster stored in a ConfigMap data key.
type RosterRef struct {
	Namespace string
	Name      string
	Key       string
}

// ParseRosterRef parses "namespace/name" (or "name", meaning the default
// namespace) into a RosterRef using key as the data key.
func ParseRosterRef(s, key string) (RosterRef, error) {
	ns, name, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		ns, name = "default", ns
	}
	if ns == "" || name == "" || strings.Contains(name, "/") {
		return RosterRef{}, fmt.Errorf("invalid configmap reference %q, expected namespace/name", s)
	}
	return RosterRef{Namespace: ns, Name: name, Key: key}, nil
}

func (r RosterRef) String() string {
	return fmt.Sprintf("configmap %s/%s[%s]", r.Namespace, r.Name, r.Key)
}

// LoadRoster reads the roster CSV held in a ConfigMap. The same lenient
// record rules as roster.Parse apply.
func LoadRoster(ctx context.Context, client kubernetes.Interface, ref RosterRef) (roster.Roster, []error, error) {
	cm, err := client.CoreV1().ConfigMaps(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil, fmt.Errorf("%s not found: %w", ref, err)
		}
		return nil, nil, fmt.Errorf("reading %s: %w", ref, err)
	}

	data, ok := cm.Data[ref.Key]
	if !ok {
		return nil, nil, fmt.Errorf("%s: key not present", ref)
	}

	r, warnings, err := roster.Parse(strings.NewReader(data))
	if err != nil {
		return nil, warnings, fmt.Errorf("%s: %w", ref, err)
	}
	if len(r) == 0 {
		return nil, warnings, fmt.Errorf("%s: %w", ref, roster.ErrEmptyRoster)
	}
	return r, warnings, nil
}

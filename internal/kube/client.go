// Package kube reads cluster rosters stored in Kubernetes ConfigMaps.
package kube

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ErrNoKubeconfig is returned when no kubeconfig is found outside a cluster.
var ErrNoKubeconfig = errors.New("no kubeconfig found and not running in-cluster")

// ClientOptions selects the kubeconfig and context used to reach the
// cluster that stores the roster.
type ClientOptions struct {
	Kubeconfig string // explicit path, overrides $KUBECONFIG
	Context    string // empty = current context
}

// NewClient creates a clientset from opts. It returns the context name that
// was used, which is empty when running in-cluster.
func NewClient(opts ClientOptions) (kubernetes.Interface, string, error) {
	restConfig, contextName, err := restConfigFor(opts)
	if err != nil {
		return nil, "", fmt.Errorf("building kubernetes config: %w", err)
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, "", fmt.Errorf("creating kubernetes client: %w", err)
	}
	return client, contextName, nil
}

// kubeconfigPath resolves the kubeconfig file: the explicit path, then
// $KUBECONFIG, then ~/.kube/config if it exists.
func kubeconfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".kube", "config")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func restConfigFor(opts ClientOptions) (*rest.Config, string, error) {
	path := kubeconfigPath(opts.Kubeconfig)
	if path == "" {
		restConfig, err := rest.InClusterConfig()
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrNoKubeconfig, err)
		}
		return restConfig, "", nil
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: path},
		&clientcmd.ConfigOverrides{CurrentContext: opts.Context},
	)

	raw, err := clientConfig.RawConfig()
	if err != nil {
		return nil, "", err
	}
	contextName := raw.CurrentContext
	if opts.Context != "" {
		contextName = opts.Context
	}

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, "", err
	}
	return restConfig, contextName, nil
}

// Package statuspage deploys the tiny landing page `kindlab up` exposes at
// https://status.<domain>. A 200 from it proves the whole chain works:
// host DNS, host TLS trust, the Kind port mappings, the ingress
// controller, and in-cluster routing.
package statuspage

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/kindlab/internal/k8s"
)

const (
	// Namespace holds the status page resources.
	Namespace = "status"

	name  = "status"
	image = "nginx:1.27-alpine"

	// TLSSecret matches the shared ingress TLS secret name.
	TLSSecret = "local-dev-tls"

	// Selector matches the status page pods.
	Selector = "app=status"
)

// Deploy creates or updates the status page Deployment, Service, and
// Ingress, plus the namespace and TLS secret they need.
func Deploy(ctx context.Context, client *k8s.Client, domain string, certPEM, keyPEM []byte) error {
	if err := client.EnsureNamespace(ctx, Namespace); err != nil {
		return err
	}

	if err := client.ReplaceTLSSecret(ctx, Namespace, TLSSecret, certPEM, keyPEM); err != nil {
		return err
	}

	clientset := client.Clientset()
	labels := map[string]string{"app": name}

	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: Namespace, Labels: labels},
		Spec: appsv1.DeploymentSpec{
			Replicas: int32Ptr(1),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  name,
						Image: image,
						Ports: []corev1.ContainerPort{{ContainerPort: 80}},
					}},
				},
			},
		},
	}

	_, err := clientset.AppsV1().Deployments(Namespace).Create(ctx, deployment, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		_, err = clientset.AppsV1().Deployments(Namespace).Update(ctx, deployment, metav1.UpdateOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to apply status deployment: %w", err)
	}

	service := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: Namespace, Labels: labels},
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Ports: []corev1.ServicePort{{
				Port:       80,
				TargetPort: intstr.FromInt32(80),
			}},
		},
	}

	_, err = clientset.CoreV1().Services(Namespace).Create(ctx, service, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		// Service ClusterIP is immutable; fetch and patch the mutable spec.
		existing, getErr := clientset.CoreV1().Services(Namespace).Get(ctx, name, metav1.GetOptions{})
		if getErr != nil {
			return fmt.Errorf("failed to get status service: %w", getErr)
		}
		existing.Spec.Selector = service.Spec.Selector
		existing.Spec.Ports = service.Spec.Ports
		_, err = clientset.CoreV1().Services(Namespace).Update(ctx, existing, metav1.UpdateOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to apply status service: %w", err)
	}

	host := "status." + domain
	pathType := networkingv1.PathTypePrefix
	ingressClass := "nginx"

	ingress := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: Namespace, Labels: labels},
		Spec: networkingv1.IngressSpec{
			IngressClassName: &ingressClass,
			TLS: []networkingv1.IngressTLS{{
				Hosts:      []string{host},
				SecretName: TLSSecret,
			}},
			Rules: []networkingv1.IngressRule{{
				Host: host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{
						Paths: []networkingv1.HTTPIngressPath{{
							Path:     "/",
							PathType: &pathType,
							Backend: networkingv1.IngressBackend{
								Service: &networkingv1.IngressServiceBackend{
									Name: name,
									Port: networkingv1.ServiceBackendPort{Number: 80},
								},
							},
						}},
					},
				},
			}},
		},
	}

	_, err = clientset.NetworkingV1().Ingresses(Namespace).Create(ctx, ingress, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		_, err = clientset.NetworkingV1().Ingresses(Namespace).Update(ctx, ingress, metav1.UpdateOptions{})
	}
	if err != nil {
		return fmt.Errorf("failed to apply status ingress: %w", err)
	}

	return nil
}

func int32Ptr(i int32) *int32 {
	return &i
}

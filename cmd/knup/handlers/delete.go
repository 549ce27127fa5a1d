package handlers

import (
	"context"
	"log"

	"github.com/mhoffm/knup/internal/minikube"
)

// Delete handles the delete command: destroy the cluster and forget the
// cached sizing profile.
func Delete(ctx context.Context) error {
	if err := checkPrerequisites(); err != nil {
		return err
	}

	store, err := newStore()
	if err != nil {
		return err
	}

	if err := minikube.NewController(newRunner(), store).Delete(ctx); err != nil {
		return err
	}
	log.Println("Cluster deleted")
	return nil
}

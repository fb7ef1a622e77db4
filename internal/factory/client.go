// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package factory

import (
	"context"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/ir"
	"github.com/vk/stepforge/internal/repository"
)

// clientPackages are the dependency entries every compiled client carries,
// regardless of which capacity the client ends up attached to.
var clientPackages = []string{
	"stepforge/resource-client",
	"stepforge/http-transport",
}

// clientNamespaces are the import entries of the generated client setup.
var clientNamespaces = []string{
	"github.com/vk/stepforge/runtime/client",
}

// compileClient builds the client-setup fragment from the `client` section.
// Every attribute is optional at this layer; the generated runtime decides
// which credential pair it needs. The client fragment is owned by its own
// repository until the caller merges it into the step repository.
func compileClient(ctx context.Context, section *config.Section) (*repository.Repository, *ir.ClientNode) {
	logger := ctxlog.FromContext(ctx)

	node := &ir.ClientNode{
		BaseURL:  section.Compile("url"),
		ClientID: section.Compile("client_id"),
		Secret:   section.Compile("secret"),
		Username: section.Compile("username"),
		Password: section.Compile("password"),
	}
	logger.Debug("Client section compiled.",
		"url_present", node.BaseURL.IsPresent(),
		"credentials_present", node.ClientID.IsPresent() || node.Username.IsPresent(),
	)

	repo := repository.New(&ir.Fragment{Kind: "client", Root: node})
	repo.AddPackages(clientPackages...)
	repo.AddNamespaces(clientNamespaces...)
	return repo, node
}

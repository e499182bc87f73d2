// Package sagas implements the coordinator's forward saga pipelines and the
// rollback driver that replays their operation logs on failure.
package sagas

import "github.com/director74/saga-coordinator/internal/oplog"

const (
	AccountCreationStart    oplog.MarkerKind = "account_creation_start"
	AccountCreationComplete oplog.MarkerKind = "account_creation_complete"

	UsersRoleSetStart    oplog.MarkerKind = "users_role_set_start"
	UsersRoleSetComplete oplog.MarkerKind = "users_role_set_complete"

	StoreRoleSetStart    oplog.MarkerKind = "store_role_set_start"
	StoreRoleSetComplete oplog.MarkerKind = "store_role_set_complete"

	BillingRoleSetStart    oplog.MarkerKind = "billing_role_set_start"
	BillingRoleSetComplete oplog.MarkerKind = "billing_role_set_complete"

	DeliveryRoleSetStart    oplog.MarkerKind = "delivery_role_set_start"
	DeliveryRoleSetComplete oplog.MarkerKind = "delivery_role_set_complete"

	BillingCreateMerchantStart    oplog.MarkerKind = "billing_create_merchant_start"
	BillingCreateMerchantComplete oplog.MarkerKind = "billing_create_merchant_complete"

	StoreCreationStart    oplog.MarkerKind = "store_creation_start"
	StoreCreationComplete oplog.MarkerKind = "store_creation_complete"

	WarehouseRoleSetStart    oplog.MarkerKind = "warehouse_role_set_start"
	WarehouseRoleSetComplete oplog.MarkerKind = "warehouse_role_set_complete"

	OrdersConvertCartStart    oplog.MarkerKind = "orders_convert_cart_start"
	OrdersConvertCartComplete oplog.MarkerKind = "orders_convert_cart_complete"

	BillingCreateInvoiceStart    oplog.MarkerKind = "billing_create_invoice_start"
	BillingCreateInvoiceComplete oplog.MarkerKind = "billing_create_invoice_complete"
)
